package models

import "time"

// JobListing is a position at a Company the user intends to apply to.
// Deleting a listing cascades to its applications.
type JobListing struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CompanyID   uint      `gorm:"index;not null" json:"company_id"`
	Location    string    `gorm:"size:100;not null" json:"location"`
	Salary      float64   `gorm:"not null" json:"salary"`
	DatePosted  time.Time `gorm:"not null" json:"date_posted"`
	Deadline    time.Time `gorm:"not null" json:"deadline"`

	Company Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// GetUserID implements the Ownable interface.
func (j *JobListing) GetUserID() uint { return j.UserID }
