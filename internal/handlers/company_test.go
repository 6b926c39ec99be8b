package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/diewo77/go-jobtrack/internal/models"
)

func TestCompanyCreateOwnedByCurrentUser(t *testing.T) {
	db := setupTestDB(t)
	h := NewCompanyHandler(db)
	user := createUser(t, db, "alice")

	form := url.Values{
		"company_name": {"Acme"},
		"industry":     {"Robotics"},
		"website":      {"https://acme.test"},
	}
	w := httptest.NewRecorder()
	h.Create(w, formRequest(user.ID, "/company", form))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}

	var company models.Company
	if err := db.First(&company, "website = ?", "https://acme.test").Error; err != nil {
		t.Fatalf("company not created: %v", err)
	}
	if company.UserID != user.ID {
		t.Fatalf("company owned by %d, expected %d", company.UserID, user.ID)
	}
}

func TestCompanyListScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	h := NewCompanyHandler(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	createCompany(t, db, alice.ID, "Acme", "https://acme.test")

	w := httptest.NewRecorder()
	h.List(w, getRequest(bob.ID, "/company"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "Acme") {
		t.Fatal("another user's company visible in list")
	}

	w2 := httptest.NewRecorder()
	h.List(w2, getRequest(alice.ID, "/company"))
	if !strings.Contains(w2.Body.String(), "Acme") {
		t.Fatal("owner's company missing from list")
	}
}

func TestCompanyDuplicateWebsite(t *testing.T) {
	db := setupTestDB(t)
	h := NewCompanyHandler(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	createCompany(t, db, alice.ID, "Acme", "https://acme.test")

	// Website uniqueness is global, not per user.
	form := url.Values{
		"company_name": {"Acme Clone"},
		"industry":     {"Robotics"},
		"website":      {"https://acme.test"},
	}
	w := httptest.NewRecorder()
	h.Create(w, formRequest(bob.ID, "/company", form))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	var count int64
	db.Model(&models.Company{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 company after duplicate website, got %d", count)
	}
	fm, ok := popFlash(t, w)
	if !ok || fm.Category != "error" {
		t.Fatalf("expected error flash, got %+v ok=%v", fm, ok)
	}
}
