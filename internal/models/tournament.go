package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TournamentType string

const (
	TournamentTypeWeekly  TournamentType = "weekly"
	TournamentTypeMonthly TournamentType = "monthly"
	TournamentTypeSpecial TournamentType = "special"
)

// Tournament is a time-boxed competition with a shared prize pool split by
// rank. Participation is free; the counter is maintained atomically with the
// participation rows.
type Tournament struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Type            TournamentType `gorm:"size:20;not null;default:weekly" json:"type"`
	EntryFee        int64          `gorm:"not null;default:0" json:"entry_fee"`
	PrizePool       int64          `gorm:"not null" json:"prize_pool"`
	Participants    int            `gorm:"not null;default:0" json:"participants"`
	MaxParticipants int            `gorm:"not null;default:1000" json:"max_participants"`
	MinScore        int            `gorm:"not null;default:0" json:"min_score"`
	StartsAt        time.Time      `gorm:"index" json:"starts_at"`
	EndsAt          time.Time      `gorm:"index" json:"ends_at"`
	IsActive        bool           `gorm:"not null;default:true;index" json:"is_active"`
	Settled         bool           `gorm:"not null;default:false;index" json:"settled"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Tournament) TableName() string {
	return "tournaments"
}

// PrizeForRank returns the pool share for a final rank: 50% / 30% / 20% for
// the top three, nothing below.
func (t *Tournament) PrizeForRank(rank int) decimal.Decimal {
	pool := decimal.NewFromInt(t.PrizePool)
	switch rank {
	case 1:
		return pool.Mul(decimal.NewFromFloat(0.5))
	case 2:
		return pool.Mul(decimal.NewFromFloat(0.3))
	case 3:
		return pool.Mul(decimal.NewFromFloat(0.2))
	default:
		return decimal.Zero
	}
}

// TournamentParticipation records one account's entry. The unique index makes
// a second join of the same tournament fail instead of double-counting.
type TournamentParticipation struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TournamentID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_account" json:"tournament_id"`
	AccountID    uint            `gorm:"not null;uniqueIndex:idx_tournament_account;index" json:"account_id"`
	JoinedAt     time.Time       `json:"joined_at"`
	Score        int             `gorm:"not null;default:0" json:"score"`
	Rank         int             `gorm:"not null;default:0" json:"rank"`
	CoinsWon     decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"coins_won"`
}

func (TournamentParticipation) TableName() string {
	return "tournament_participations"
}

// RankedParticipant pairs an account with its final rank for settlement.
type RankedParticipant struct {
	AccountID uint `json:"account_id"`
	Rank      int  `json:"rank"`
	Score     int  `json:"score"`
}
