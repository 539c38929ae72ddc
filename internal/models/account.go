package models

// Account represents a registered customer. Accounts are immutable once
// created except for the admin flag, and are never deleted in-app.
type Account struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `gorm:"not null" json:"first_name"`
	LastName     string `gorm:"not null" json:"last_name"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Postcode     string `gorm:"not null" json:"postcode"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
}
