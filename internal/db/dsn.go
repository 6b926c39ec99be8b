package db

import (
	"os"
	"regexp"
	"strings"
)

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

// NormalizeDSN accepts either a URL style DSN (postgres://...) or a lib/pq
// key=value list. It trims quotes and whitespace and, if given key=value
// form, returns it cleaned with sslmode defaulted to disable.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return s
	}
	// If it does not look like key=value pairs, return unchanged (the driver
	// will error).
	if !kvPairRegex.MatchString(s) {
		return s
	}
	fields := strings.Fields(s)
	cleaned := strings.Join(fields, " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

// GetNormalizedDSN fetches DATABASE_DSN env var and normalizes it.
func GetNormalizedDSN() string { return NormalizeDSN(os.Getenv("DATABASE_DSN")) }
