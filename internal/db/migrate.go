package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for
	// golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-jobtrack/internal/models"
)

// ConnectAndMigrate opens the database and brings the schema up to date.
// With MIGRATIONS=1 the SQL migrations in ./migrations run via
// golang-migrate; otherwise GORM AutoMigrate is used (dev convenience).
func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	var db *gorm.DB
	var err error
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		log.Warn().Err(err).Msg("retrying DB connection")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	log.Info().Str("dsn", maskDSN(dsn)).Msg("database connected")

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"users", "companies", "job_listings", "applications"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	return db, nil
}

// AutoMigrate creates or updates the four application tables. Shared with
// tests, which run it against in-memory SQLite.
func AutoMigrate(db *gorm.DB) error {
	modelsToMigrate := []any{
		&models.User{}, &models.Company{}, &models.JobListing{}, &models.Application{},
	}
	for _, m := range modelsToMigrate {
		if migErr := db.AutoMigrate(m); migErr != nil {
			return fmt.Errorf("automigrate %T: %w", m, migErr)
		}
	}
	return nil
}

func maskDSN(dsn string) string {
	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	if u := regexp.MustCompile(`(://[^:/@]+:)([^@]+)@`); u.MatchString(masked) {
		masked = u.ReplaceAllString(masked, `${1}***@`)
	}
	return masked
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
