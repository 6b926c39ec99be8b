package models

// User represents an authenticated user in the system.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string `gorm:"size:128;not null" json:"-"` // bcrypt hash, never exposed
	Email        string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	FirstName    string `gorm:"size:50;not null" json:"first_name"`
	LastName     string `gorm:"size:50;not null" json:"last_name"`
}
