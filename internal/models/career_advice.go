package models

import (
	"time"

	"github.com/google/uuid"
)

// CareerAdvice stores one question/answer exchange with the advice model.
// Free feature: no ledger interaction.
type CareerAdvice struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID  uint      `gorm:"not null;index" json:"account_id"`
	Query      string    `gorm:"type:text;not null" json:"query"`
	Response   string    `gorm:"type:text" json:"response"`
	Category   string    `gorm:"size:64" json:"category"`
	Language   string    `gorm:"size:8;not null;default:en" json:"language"`
	Model      string    `gorm:"size:64" json:"model"`
	TokensUsed int       `gorm:"not null;default:0" json:"tokens_used"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (CareerAdvice) TableName() string {
	return "career_advice"
}
