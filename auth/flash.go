package auth

import (
	"crypto/hmac"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

// Flash categories, mirrored by the templates for styling.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

const flashCookieName = "flash"

// FlashMessage is a one-shot notification carried from one request to the
// next via a signed cookie and cleared when read.
type FlashMessage struct {
	Category string
	Message  string
}

// Flash queues a one-shot message for the next rendered page.
func Flash(w http.ResponseWriter, category, message string) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(category + "\x00" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    payload + "." + sign(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash message, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) (FlashMessage, bool) {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return FlashMessage{}, false
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return FlashMessage{}, false
	}
	payload, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(sign(payload))) {
		return FlashMessage{}, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return FlashMessage{}, false
	}
	cat, msg, ok := strings.Cut(string(raw), "\x00")
	if !ok {
		return FlashMessage{}, false
	}
	return FlashMessage{Category: cat, Message: msg}, true
}
