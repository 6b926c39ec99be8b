package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/go-jobtrack/auth"
	"github.com/diewo77/go-jobtrack/internal/models"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// ApplicationRow is an application joined with its listing and company for
// the dashboard table.
type ApplicationRow struct {
	ID              uint
	JobTitle        string
	CompanyName     string
	ApplicationDate time.Time
	Status          string
	Notes           string
}

// Index renders the dashboard with the user's counts and recent
// applications, each with a status form.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var user models.User
	if err := h.db.First(&user, uid).Error; err != nil {
		log.Error().Err(err).Msg("dashboard: user lookup failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var companyCount, listingCount, applicationCount int64
	h.db.Model(&models.Company{}).Where("user_id = ?", uid).Count(&companyCount)
	h.db.Model(&models.JobListing{}).Where("user_id = ?", uid).Count(&listingCount)
	h.db.Model(&models.Application{}).Where("user_id = ?", uid).Count(&applicationCount)

	var recent []ApplicationRow
	if err := h.db.Model(&models.Application{}).
		Select("applications.id, job_listings.title as job_title, companies.name as company_name, applications.application_date, applications.status, applications.notes").
		Joins("INNER JOIN job_listings ON job_listings.id = applications.job_id").
		Joins("INNER JOIN companies ON companies.id = job_listings.company_id").
		Where("applications.user_id = ?", uid).
		Order("applications.id DESC").
		Limit(10).
		Scan(&recent).Error; err != nil {
		log.Error().Err(err).Msg("dashboard: application lookup failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	renderOrError(w, r, "index.html", map[string]any{
		"User": user,
		"Stats": map[string]any{
			"Companies":    companyCount,
			"JobListings":  listingCount,
			"Applications": applicationCount,
		},
		"RecentApplications": recent,
		"Statuses":           models.Statuses,
	})
}
