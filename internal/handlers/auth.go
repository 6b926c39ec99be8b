package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/go-jobtrack/auth"
	"github.com/diewo77/go-jobtrack/internal/models"
	"github.com/diewo77/go-jobtrack/validation"
	"github.com/diewo77/go-jobtrack/view"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderOrError(w, r, "login.html", nil)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		// Unknown username and storage failure look identical to the caller;
		// only the latter is an operator concern.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("login: user lookup failed")
		}
		auth.Flash(w, auth.FlashError, "Invalid username or password.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		auth.Flash(w, auth.FlashError, "Invalid username or password.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	auth.CreateSession(w, user.ID)
	auth.Flash(w, auth.FlashSuccess, "You have successfully logged in.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderOrError(w, r, "register.html", nil)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	email := r.FormValue("email")
	firstName := r.FormValue("first_name")
	lastName := r.FormValue("last_name")

	v := validation.Violations{}
	validation.Required("username", username, v)
	validation.Required("password", password, v)
	validation.Required("email", email, v)
	validation.Required("first_name", firstName, v)
	validation.Required("last_name", lastName, v)
	if !v.Empty() {
		renderOrError(w, r, "register.html", map[string]any{"Errors": v})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("register: hashing failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
	}

	// Single atomic insert; the unique indexes decide whether the username
	// or email is taken. No pre-check SELECT, so concurrent registrations
	// cannot race past each other.
	if err := h.db.Create(&user).Error; err != nil {
		if isDuplicateErr(err) {
			if strings.Contains(strings.ToLower(err.Error()), "email") {
				auth.Flash(w, auth.FlashError, "Email already exists")
			} else {
				auth.Flash(w, auth.FlashError, "Username already exists")
			}
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
		log.Error().Err(err).Msg("register: insert failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	auth.Flash(w, auth.FlashSuccess, "You have successfully registered.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	auth.Flash(w, auth.FlashSuccess, "You have successfully logged out.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// isDuplicateErr reports whether err is a unique-constraint violation, in
// either the postgres or sqlite wording.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// renderOrError renders a template and turns render failures into a 500.
func renderOrError(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("template render failed")
		http.Error(w, "failed to render template", http.StatusInternalServerError)
	}
}
