package models

// Company is an employer the user is tracking. Companies are owned by the
// user who created them; deleting one cascades to its job listings.
type Company struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Industry string `gorm:"size:100;not null" json:"industry"`
	Website  string `gorm:"uniqueIndex;size:100;not null" json:"website"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// GetUserID implements the Ownable interface.
func (c *Company) GetUserID() uint { return c.UserID }
