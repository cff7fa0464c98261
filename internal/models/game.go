package models

import (
	"time"

	"github.com/google/uuid"
)

// Coin formula for a finished game run.
const (
	GameBaseCoins     = 5
	GameCoinsPerScore = 0.1
)

// DefaultGameName names the bundled game; score rows carry it until more
// games ship.
const DefaultGameName = "Cube Jumper"

// GameScore records one finished game run and the coins it earned.
type GameScore struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID       uint      `gorm:"not null;index" json:"account_id"`
	GameName        string    `gorm:"size:255;not null;default:Cube Jumper" json:"game_name"`
	Score           int       `gorm:"not null" json:"score"`
	CoinsEarned     int64     `gorm:"not null" json:"coins_earned"`
	DurationSeconds int       `gorm:"not null" json:"duration_seconds"`
	IsHighScore     bool      `gorm:"not null;default:false" json:"is_high_score"`
	Level           int       `gorm:"not null;default:1" json:"level"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

func (GameScore) TableName() string {
	return "game_scores"
}

// CoinsForScore computes the coin reward for a score: base plus a tenth of
// the score, truncated.
func CoinsForScore(score int) int64 {
	return GameBaseCoins + int64(float64(score)*GameCoinsPerScore)
}
