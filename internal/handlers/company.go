package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/go-jobtrack/auth"
	"github.com/diewo77/go-jobtrack/internal/models"
	"github.com/diewo77/go-jobtrack/validation"
)

type CompanyHandler struct {
	db *gorm.DB
}

func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{db: db}
}

// List shows the current user's companies.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var companies []models.Company
	if err := h.db.Where("user_id = ?", uid).Find(&companies).Error; err != nil {
		log.Error().Err(err).Msg("company: list failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	renderOrError(w, r, "company.html", map[string]any{"Companies": companies})
}

// Create inserts a company owned by the current user.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	name := r.FormValue("company_name")
	industry := r.FormValue("industry")
	website := r.FormValue("website")

	v := validation.Violations{}
	validation.Required("company_name", name, v)
	validation.Required("industry", industry, v)
	validation.Required("website", website, v)
	if !v.Empty() {
		auth.Flash(w, auth.FlashError, "Name, industry and website are required.")
		http.Redirect(w, r, "/company", http.StatusSeeOther)
		return
	}

	company := models.Company{UserID: uid, Name: name, Industry: industry, Website: website}
	if err := h.db.Create(&company).Error; err != nil {
		// Website is unique across all users.
		if isDuplicateErr(err) {
			auth.Flash(w, auth.FlashError, "A company with that website already exists.")
			http.Redirect(w, r, "/company", http.StatusSeeOther)
			return
		}
		log.Error().Err(err).Msg("company: insert failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/company", http.StatusSeeOther)
}
