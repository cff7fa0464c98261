package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lifemate-backend/internal/models"
)

// CreateTournament persists a new tournament.
func (r *Repository) CreateTournament(ctx context.Context, tournament *models.Tournament) error {
	if tournament.ID == uuid.Nil {
		tournament.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(tournament).Error; err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

// GetTournament returns a tournament by ID.
func (r *Repository) GetTournament(ctx context.Context, tournamentID uuid.UUID) (*models.Tournament, error) {
	var tournament models.Tournament
	if err := r.db.WithContext(ctx).Where("id = ?", tournamentID).First(&tournament).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read tournament: %w", err)
	}
	return &tournament, nil
}

// GetCurrentTournament returns the active tournament, if one is running. A
// tournament past its end time no longer counts, even while it awaits
// settlement.
func (r *Repository) GetCurrentTournament(ctx context.Context) (*models.Tournament, error) {
	var tournament models.Tournament
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND ends_at > ?", true, time.Now()).
		Order("starts_at DESC").
		First(&tournament).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read current tournament: %w", err)
	}
	return &tournament, nil
}

// ListTournaments returns tournaments, newest first.
func (r *Repository) ListTournaments(ctx context.Context, limit int) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	err := r.db.WithContext(ctx).
		Order("starts_at DESC").
		Limit(limit).
		Find(&tournaments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

// JoinTournament increments the participant counter and inserts the
// participation row in one transaction. A duplicate join fails with
// ErrAlreadyJoined; full or inactive tournaments with ErrTournamentClosed.
func (r *Repository) JoinTournament(ctx context.Context, tournamentID uuid.UUID, accountID uint) (*models.TournamentParticipation, error) {
	participation := &models.TournamentParticipation{
		ID:           uuid.New(),
		TournamentID: tournamentID,
		AccountID:    accountID,
		JoinedAt:     time.Now(),
		CoinsWon:     decimal.Zero,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tournament models.Tournament
		if err := tx.Where("id = ?", tournamentID).First(&tournament).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read tournament: %w", err)
		}
		if !tournament.IsActive || tournament.Settled {
			return ErrTournamentClosed
		}

		if err := tx.Create(participation).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyJoined
			}
			return fmt.Errorf("failed to create participation: %w", err)
		}

		// Guarded increment keeps the tournament from overfilling under
		// concurrent joins.
		res := tx.Model(&models.Tournament{}).
			Where("id = ? AND participants < max_participants", tournamentID).
			Update("participants", gorm.Expr("participants + 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to increment participants: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrTournamentClosed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return participation, nil
}

// GetParticipation returns one account's entry in a tournament.
func (r *Repository) GetParticipation(ctx context.Context, tournamentID uuid.UUID, accountID uint) (*models.TournamentParticipation, error) {
	var participation models.TournamentParticipation
	err := r.db.WithContext(ctx).
		Where("tournament_id = ? AND account_id = ?", tournamentID, accountID).
		First(&participation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read participation: %w", err)
	}
	return &participation, nil
}

// ListParticipations returns a tournament's entries ordered by score for
// leaderboard display.
func (r *Repository) ListParticipations(ctx context.Context, tournamentID uuid.UUID, limit int) ([]models.TournamentParticipation, error) {
	var participations []models.TournamentParticipation
	err := r.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("score DESC").
		Limit(limit).
		Find(&participations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	return participations, nil
}

// RaiseParticipationScore lifts an entry's score to the given value if it is
// higher than what is recorded. Used when a game run finishes during an
// active tournament.
func (r *Repository) RaiseParticipationScore(ctx context.Context, tournamentID uuid.UUID, accountID uint, score int) error {
	err := r.db.WithContext(ctx).Model(&models.TournamentParticipation{}).
		Where("tournament_id = ? AND account_id = ? AND score < ?", tournamentID, accountID, score).
		Update("score", score).Error
	if err != nil {
		return fmt.Errorf("failed to raise participation score: %w", err)
	}
	return nil
}

// CreditTournamentPrize credits one ranked participant's prize share and
// stamps rank and winnings on the participation row. Ranks outside the prize
// table credit nothing but still record the final rank. The rank stamp also
// guards the credit: an entry whose rank is already set is skipped, so a
// partially failed settlement can be retried without paying anyone twice.
func (r *Repository) CreditTournamentPrize(ctx context.Context, tournament *models.Tournament, accountID uint, rank, score int) (decimal.Decimal, decimal.Decimal, error) {
	prize := tournament.PrizeForRank(rank)

	var balance decimal.Decimal
	alreadyCredited := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.TournamentParticipation{}).
			Where("tournament_id = ? AND account_id = ? AND rank = 0", tournament.ID, accountID).
			Updates(map[string]interface{}{
				"rank":      rank,
				"score":     score,
				"coins_won": prize,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update participation: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var existing models.TournamentParticipation
			err := tx.Where("tournament_id = ? AND account_id = ?", tournament.ID, accountID).
				First(&existing).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return fmt.Errorf("failed to read participation: %w", err)
			}
			alreadyCredited = true
			return nil
		}

		if prize.IsZero() {
			return nil
		}

		meta := models.TransactionMeta{
			Type:        models.TransactionTypeReward,
			Description: fmt.Sprintf("Tournament prize: %s, rank %d", tournament.Name, rank),
		}
		var err error
		if _, balance, err = applyDelta(tx, accountID, prize, meta); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"total_earnings": gorm.Expr("total_earnings + ?", prize),
		}
		if rank == 1 {
			updates["tournament_wins"] = gorm.Expr("tournament_wins + 1")
		}
		return tx.Model(&models.Account{}).Where("id = ?", accountID).Updates(updates).Error
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if alreadyCredited {
		return decimal.Zero, decimal.Zero, nil
	}
	return prize, balance, nil
}

// MarkTournamentSettled flags a tournament as paid out and no longer active.
func (r *Repository) MarkTournamentSettled(ctx context.Context, tournamentID uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&models.Tournament{}).
		Where("id = ?", tournamentID).
		Updates(map[string]interface{}{"settled": true, "is_active": false}).Error
	if err != nil {
		return fmt.Errorf("failed to mark tournament settled: %w", err)
	}
	return nil
}

// ListUnsettledEnded returns tournaments whose end time has passed and whose
// prizes have not been paid.
func (r *Repository) ListUnsettledEnded(ctx context.Context, now time.Time, limit int) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	err := r.db.WithContext(ctx).
		Where("settled = ? AND ends_at <= ?", false, now).
		Order("ends_at ASC").
		Limit(limit).
		Find(&tournaments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unsettled tournaments: %w", err)
	}
	return tournaments, nil
}
