package models

import "time"

// Application statuses. Transitions are free-form: any status may follow
// any other.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// Statuses lists the allowed application statuses in display order.
var Statuses = []string{StatusPending, StatusAccepted, StatusRejected}

// Application records that the user applied to a JobListing.
type Application struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	JobID           uint      `gorm:"index;not null" json:"job_id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	ApplicationDate time.Time `json:"application_date"`
	Status          string    `gorm:"size:20;not null;default:Pending;check:chk_applications_status,status IN ('Pending','Accepted','Rejected')" json:"status"`
	Notes           string    `gorm:"type:text" json:"notes"`

	Job  JobListing `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	User User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// GetUserID implements the Ownable interface.
func (a *Application) GetUserID() uint { return a.UserID }
