package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/go-jobtrack/auth"
	"github.com/diewo77/go-jobtrack/internal/models"
	"github.com/diewo77/go-jobtrack/validation"
)

type JobHandler struct {
	db *gorm.DB
}

func NewJobHandler(db *gorm.DB) *JobHandler {
	return &JobHandler{db: db}
}

// JobRow is a job listing joined with its company name for display.
type JobRow struct {
	ID          uint
	Title       string
	Description string
	Location    string
	Salary      float64
	DatePosted  time.Time
	Deadline    time.Time
	CompanyName string
	CompanyID   uint
}

func (h *JobHandler) listRows(uid uint) ([]JobRow, error) {
	var rows []JobRow
	err := h.db.Model(&models.JobListing{}).
		Select("job_listings.id, job_listings.title, job_listings.description, job_listings.location, job_listings.salary, job_listings.date_posted, job_listings.deadline, companies.name as company_name, companies.id as company_id").
		Joins("INNER JOIN companies ON companies.id = job_listings.company_id").
		Where("job_listings.user_id = ?", uid).
		Scan(&rows).Error
	return rows, err
}

func (h *JobHandler) ownCompanies(uid uint) ([]models.Company, error) {
	var companies []models.Company
	err := h.db.Select("id", "name").Where("user_id = ?", uid).Find(&companies).Error
	return companies, err
}

// List shows the current user's job listings with a creation form.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	rows, err := h.listRows(uid)
	if err != nil {
		log.Error().Err(err).Msg("job: list failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	companies, err := h.ownCompanies(uid)
	if err != nil {
		log.Error().Err(err).Msg("job: company lookup failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	renderOrError(w, r, "job.html", map[string]any{
		"JobListings": rows,
		"Companies":   companies,
		"JobInfo":     nil,
	})
}

// parseListingForm reads and validates the shared create/edit form fields.
func parseListingForm(r *http.Request) (models.JobListing, validation.Violations) {
	v := validation.Violations{}
	title := r.FormValue("job_title")
	description := r.FormValue("description")
	location := r.FormValue("location")
	validation.Required("job_title", title, v)
	validation.Required("description", description, v)
	validation.Required("location", location, v)
	companyID, err := strconv.ParseUint(r.FormValue("company_id"), 10, 64)
	if err != nil || companyID == 0 {
		v["company_id"] = "required"
	}
	salary, err := strconv.ParseFloat(r.FormValue("salary"), 64)
	if err != nil {
		v["salary"] = "invalid_number"
	}
	datePosted := validation.Date("date_posted", r.FormValue("date_posted"), v)
	deadline := validation.Date("deadline", r.FormValue("deadline"), v)
	return models.JobListing{
		Title:       title,
		Description: description,
		CompanyID:   uint(companyID),
		Location:    location,
		Salary:      salary,
		DatePosted:  datePosted,
		Deadline:    deadline,
	}, v
}

// Create inserts a job listing owned by the current user. The referenced
// company must belong to the same user.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	listing, v := parseListingForm(r)
	if !v.Empty() {
		auth.Flash(w, auth.FlashError, "All job listing fields are required.")
		http.Redirect(w, r, "/job", http.StatusSeeOther)
		return
	}
	if !h.ownsCompany(uid, listing.CompanyID) {
		auth.Flash(w, auth.FlashError, "Unknown company.")
		http.Redirect(w, r, "/job", http.StatusSeeOther)
		return
	}

	listing.UserID = uid
	if err := h.db.Create(&listing).Error; err != nil {
		log.Error().Err(err).Msg("job: insert failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/job", http.StatusSeeOther)
}

// Delete removes one of the current user's listings; applications against
// it go with it via the cascade.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	jobID, ok := pathID(r, "job_id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.db.Where("id = ? AND user_id = ?", jobID, uid).Delete(&models.JobListing{}).Error; err != nil {
		log.Error().Err(err).Msg("job: delete failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/job", http.StatusSeeOther)
}

// Edit shows the job page with the edit form pre-filled for one of the
// current user's listings.
func (h *JobHandler) Edit(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	jobID, ok := pathID(r, "job_id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	var row JobRow
	err := h.db.Model(&models.JobListing{}).
		Select("job_listings.id, job_listings.title, job_listings.description, job_listings.location, job_listings.salary, job_listings.date_posted, job_listings.deadline, companies.name as company_name, companies.id as company_id").
		Joins("INNER JOIN companies ON companies.id = job_listings.company_id").
		Where("job_listings.id = ? AND job_listings.user_id = ?", jobID, uid).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Msg("job: edit lookup failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	companies, err := h.ownCompanies(uid)
	if err != nil {
		log.Error().Err(err).Msg("job: company lookup failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	renderOrError(w, r, "job.html", map[string]any{
		"JobInfo":   row,
		"Companies": companies,
	})
}

// Update replaces the editable fields of one of the current user's listings.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	jobID, ok := pathID(r, "job_id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	var listing models.JobListing
	if err := h.db.First(&listing, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Msg("job: update lookup failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !owned(uid, &listing) {
		http.NotFound(w, r)
		return
	}

	updated, v := parseListingForm(r)
	if !v.Empty() {
		auth.Flash(w, auth.FlashError, "All job listing fields are required.")
		http.Redirect(w, r, "/edit-job/"+strconv.FormatUint(uint64(jobID), 10), http.StatusSeeOther)
		return
	}
	if !h.ownsCompany(uid, updated.CompanyID) {
		auth.Flash(w, auth.FlashError, "Unknown company.")
		http.Redirect(w, r, "/edit-job/"+strconv.FormatUint(uint64(jobID), 10), http.StatusSeeOther)
		return
	}

	listing.Title = updated.Title
	listing.Description = updated.Description
	listing.CompanyID = updated.CompanyID
	listing.Location = updated.Location
	listing.Salary = updated.Salary
	listing.DatePosted = updated.DatePosted
	listing.Deadline = updated.Deadline
	if err := h.db.Save(&listing).Error; err != nil {
		log.Error().Err(err).Msg("job: update failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/job", http.StatusSeeOther)
}

// Apply records an application for the current user against a listing with
// today's date and Pending status. Repeat applications are allowed.
func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	jobID, ok := pathID(r, "job_id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	app := models.Application{
		JobID:           jobID,
		UserID:          uid,
		ApplicationDate: today,
		Status:          models.StatusPending,
	}
	if err := h.db.Create(&app).Error; err != nil {
		// Foreign key violation when the listing id does not exist.
		auth.Flash(w, auth.FlashError, "Job listing not found.")
		http.Redirect(w, r, "/job", http.StatusSeeOther)
		return
	}
	auth.Flash(w, auth.FlashSuccess, "Application recorded.")
	http.Redirect(w, r, "/job", http.StatusSeeOther)
}

func (h *JobHandler) ownsCompany(uid, companyID uint) bool {
	var count int64
	if err := h.db.Model(&models.Company{}).Where("id = ? AND user_id = ?", companyID, uid).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// owned reports whether a record belongs to the user.
func owned(uid uint, rec models.Ownable) bool {
	return rec.GetUserID() == uid
}

// pathID reads a positive integer path parameter.
func pathID(r *http.Request, name string) (uint, bool) {
	id64, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}
