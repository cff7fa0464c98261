package models

import (
	"time"
)

// User is the auth identity. Ledger state lives on the Account row keyed by
// this ID.
type User struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Name                string     `gorm:"size:255" json:"name"`
	LanguagePreference  string     `gorm:"size:8;not null;default:en" json:"language_preference"`
	NotificationEnabled bool       `gorm:"not null;default:true" json:"notification_enabled"`
	LastLoginAt         *time.Time `json:"last_login_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
