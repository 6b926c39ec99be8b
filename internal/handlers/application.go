package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/go-jobtrack/auth"
	"github.com/diewo77/go-jobtrack/internal/models"
	"github.com/diewo77/go-jobtrack/validation"
)

type ApplicationHandler struct {
	db *gorm.DB
}

func NewApplicationHandler(db *gorm.DB) *ApplicationHandler {
	return &ApplicationHandler{db: db}
}

// UpdateStatus sets a new status on one of the current user's applications.
// Transitions are free-form; only the value itself is validated.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	appID, ok := pathID(r, "application_id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	status := r.FormValue("status")
	v := validation.Violations{}
	validation.OneOf("status", status, models.Statuses, v)
	if !v.Empty() {
		auth.Flash(w, auth.FlashError, "Invalid application status.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	res := h.db.Model(&models.Application{}).
		Where("id = ? AND user_id = ?", appID, uid).
		Update("status", status)
	if res.Error != nil {
		log.Error().Err(res.Error).Msg("application: status update failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
