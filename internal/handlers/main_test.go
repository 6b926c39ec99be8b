package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/go-jobtrack/auth"
	dbpkg "github.com/diewo77/go-jobtrack/internal/db"
	"github.com/diewo77/go-jobtrack/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test; _fk=1 enables the cascade FKs.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbpkg.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createCompany(t *testing.T, db *gorm.DB, uid uint, name, website string) models.Company {
	t.Helper()
	company := models.Company{UserID: uid, Name: name, Industry: "Software", Website: website}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}
	return company
}

func createListing(t *testing.T, db *gorm.DB, uid, companyID uint, title string) models.JobListing {
	t.Helper()
	listing := models.JobListing{
		UserID:      uid,
		Title:       title,
		Description: "desc",
		CompanyID:   companyID,
		Location:    "Remote",
		Salary:      90000,
		DatePosted:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Deadline:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return listing
}

// formRequest builds an authenticated form POST.
func formRequest(uid uint, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if uid != 0 {
		req = req.WithContext(auth.WithUserID(req.Context(), uid))
	}
	return req
}

// getRequest builds an authenticated GET.
func getRequest(uid uint, target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if uid != 0 {
		req = req.WithContext(auth.WithUserID(req.Context(), uid))
	}
	return req
}

// popFlash extracts the flash message queued by a handler response.
func popFlash(t *testing.T, w *httptest.ResponseRecorder) (auth.FlashMessage, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return auth.PopFlash(httptest.NewRecorder(), req)
}
