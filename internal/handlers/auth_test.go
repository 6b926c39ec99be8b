package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/diewo77/go-jobtrack/internal/models"
)

func TestRegisterCreatesUser(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	form := url.Values{
		"username":   {"alice"},
		"password":   {"hunter2"},
		"email":      {"alice@example.com"},
		"first_name": {"Alice"},
		"last_name":  {"Smith"},
	}
	w := httptest.NewRecorder()
	h.Register(w, formRequest(0, "/register", form))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login got %q", loc)
	}

	var user models.User
	if err := db.Where("username = ?", "alice").First(&user).Error; err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if user.PasswordHash == "hunter2" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterDuplicateUsernameRejected(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)
	createUser(t, db, "alice")

	form := url.Values{
		"username":   {"alice"},
		"password":   {"other"},
		"email":      {"second@example.com"},
		"first_name": {"Other"},
		"last_name":  {"Person"},
	}
	w := httptest.NewRecorder()
	h.Register(w, formRequest(0, "/register", form))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/register" {
		t.Fatalf("expected redirect back to /register got %q", loc)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 user after duplicate registration, got %d", count)
	}
	fm, ok := popFlash(t, w)
	if !ok || fm.Message != "Username already exists" {
		t.Fatalf("expected duplicate-username flash, got %+v ok=%v", fm, ok)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	w := httptest.NewRecorder()
	h.Register(w, formRequest(0, "/register", url.Values{"username": {"bob"}}))
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no user created, got %d", count)
	}
}

func TestLoginSuccessSetsSession(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)
	createUser(t, db, "alice")

	form := url.Values{"username": {"alice"}, "password": {"secret"}}
	w := httptest.NewRecorder()
	h.Login(w, formRequest(0, "/login", form))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to / got %q", loc)
	}
	var hasSession bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			hasSession = true
		}
	}
	if !hasSession {
		t.Fatal("session cookie not set on login")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)
	createUser(t, db, "alice")

	form := url.Values{"username": {"alice"}, "password": {"wrong"}}
	w := httptest.NewRecorder()
	h.Login(w, formRequest(0, "/login", form))
	assertLoginRejected(t, w)
}

func TestLoginUnknownUsername(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	form := url.Values{"username": {"nobody"}, "password": {"secret"}}
	w := httptest.NewRecorder()
	h.Login(w, formRequest(0, "/login", form))
	assertLoginRejected(t, w)
}

// Unknown username and bad password must be indistinguishable to the caller.
func assertLoginRejected(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login got %q", loc)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			t.Fatal("session cookie set on failed login")
		}
	}
	fm, ok := popFlash(t, w)
	if !ok || fm.Message != "Invalid username or password." {
		t.Fatalf("expected generic login flash, got %+v ok=%v", fm, ok)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	w := httptest.NewRecorder()
	h.Logout(w, getRequest(1, "/logout"))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie not cleared on logout")
	}
}
