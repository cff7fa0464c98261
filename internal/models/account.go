package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a user's spendable balance plus the profile counters the
// reward paths maintain. One account per user, created on first balance read.
type Account struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance          decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"balance"`
	Currency         string          `gorm:"size:8;not null;default:USD" json:"currency"`
	TotalEarnings    decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"total_earnings"`
	TotalWithdrawals decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"total_withdrawals"`
	GameHighScore    int             `gorm:"not null;default:0" json:"game_high_score"`
	TotalGamesPlayed int             `gorm:"not null;default:0" json:"total_games_played"`
	TournamentWins   int             `gorm:"not null;default:0" json:"tournament_wins"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}
