package models

import (
	"time"

	"github.com/google/uuid"
)

// WellnessRemedy is a curated wellness practice. Only verified remedies are
// served to clients.
type WellnessRemedy struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	WellnessFocus      string    `gorm:"size:255" json:"wellness_focus"`
	Description        string    `gorm:"type:text" json:"description"`
	Ingredients        []string  `gorm:"serializer:json" json:"ingredients"`
	Preparation        string    `gorm:"type:text" json:"preparation"`
	Suggestion         string    `gorm:"type:text" json:"suggestion"`
	Precautions        string    `gorm:"type:text" json:"precautions"`
	Region             string    `gorm:"size:255" json:"region"`
	EffectivenessLevel string    `gorm:"size:64" json:"effectiveness_level"`
	Tags               []string  `gorm:"serializer:json" json:"tags"`
	Language           string    `gorm:"size:8;not null;default:en" json:"language"`
	IsVerified         bool      `gorm:"not null;default:false;index" json:"is_verified"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (WellnessRemedy) TableName() string {
	return "wellness_remedies"
}

// PracticeCompletion marks a remedy as practiced by an account. The unique
// index keeps the completion reward one-shot per remedy.
type PracticeCompletion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID uint      `gorm:"not null;uniqueIndex:idx_account_remedy" json:"account_id"`
	RemedyID  uint      `gorm:"not null;uniqueIndex:idx_account_remedy" json:"remedy_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PracticeCompletion) TableName() string {
	return "practice_completions"
}
