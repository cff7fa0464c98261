package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

// TournamentService records entries into tournaments and pays out the prize
// pool when one ends.
type TournamentService struct {
	repo    *repository.Repository
	rewards *RewardService
}

func NewTournamentService(repo *repository.Repository, rewards *RewardService) *TournamentService {
	return &TournamentService{repo: repo, rewards: rewards}
}

// Create persists a new tournament.
func (s *TournamentService) Create(ctx context.Context, tournament *models.Tournament) error {
	if tournament.PrizePool <= 0 {
		return ErrInvalidAmount
	}
	return s.repo.CreateTournament(ctx, tournament)
}

// Current returns the active tournament, if any.
func (s *TournamentService) Current(ctx context.Context) (*models.Tournament, error) {
	return s.repo.GetCurrentTournament(ctx)
}

// List returns recent tournaments.
func (s *TournamentService) List(ctx context.Context, limit int) ([]models.Tournament, error) {
	return s.repo.ListTournaments(ctx, limit)
}

// Join enters an account into a tournament. The participant counter and the
// participation row are written atomically; a second join of the same
// tournament fails with repository.ErrAlreadyJoined.
func (s *TournamentService) Join(ctx context.Context, tournamentID uuid.UUID, accountID uint) (*models.TournamentParticipation, error) {
	participation, err := s.repo.JoinTournament(ctx, tournamentID, accountID)
	if err != nil {
		return nil, err
	}
	log.Printf("Tournament joined: tournament=%s account=%d", tournamentID, accountID)
	return participation, nil
}

// Leaderboard returns a tournament's entries ordered by score.
func (s *TournamentService) Leaderboard(ctx context.Context, tournamentID uuid.UUID, limit int) ([]models.TournamentParticipation, error) {
	return s.repo.ListParticipations(ctx, tournamentID, limit)
}

// Settle pays each ranked participant's prize share. Credits are independent:
// one failed credit is logged and skipped rather than rolling back the rest,
// and the tournament is only marked settled when every credit succeeded. A
// retried settlement skips entries already paid.
func (s *TournamentService) Settle(ctx context.Context, tournamentID uuid.UUID, ranking []models.RankedParticipant) error {
	tournament, err := s.repo.GetTournament(ctx, tournamentID)
	if err != nil {
		return err
	}
	if tournament.Settled {
		return repository.ErrTournamentClosed
	}

	failed := 0
	for _, entry := range ranking {
		_, err := s.rewards.CreditTournamentPrize(ctx, tournament, entry.AccountID, entry.Rank, entry.Score)
		if err != nil {
			failed++
			log.Printf("Warning: prize credit failed: tournament=%s account=%d rank=%d: %v",
				tournamentID, entry.AccountID, entry.Rank, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("settlement incomplete: %d of %d prize credits failed", failed, len(ranking))
	}

	if err := s.repo.MarkTournamentSettled(ctx, tournamentID); err != nil {
		return err
	}
	log.Printf("Tournament settled: %s (%d participants ranked)", tournamentID, len(ranking))
	return nil
}

// SettleNow ranks a tournament's participants and pays prizes immediately,
// regardless of the scheduled end time.
func (s *TournamentService) SettleNow(ctx context.Context, tournamentID uuid.UUID) error {
	tournament, err := s.repo.GetTournament(ctx, tournamentID)
	if err != nil {
		return err
	}

	ranking, err := s.rankParticipants(ctx, tournament)
	if err != nil {
		return err
	}
	return s.Settle(ctx, tournament.ID, ranking)
}

// SettleEnded finds tournaments past their end time, ranks their participants
// by score and settles them. Returns how many tournaments were settled.
func (s *TournamentService) SettleEnded(ctx context.Context, now time.Time) (int, error) {
	tournaments, err := s.repo.ListUnsettledEnded(ctx, now, 50)
	if err != nil {
		return 0, err
	}

	settled := 0
	for i := range tournaments {
		tournament := &tournaments[i]

		ranking, err := s.rankParticipants(ctx, tournament)
		if err != nil {
			log.Printf("Warning: failed to rank tournament %s: %v", tournament.ID, err)
			continue
		}

		if err := s.Settle(ctx, tournament.ID, ranking); err != nil {
			log.Printf("Warning: failed to settle tournament %s: %v", tournament.ID, err)
			continue
		}
		settled++
	}
	return settled, nil
}

// rankParticipants orders entries by score and drops those under the
// tournament's minimum. Rank is the position in the full standings, so a
// filtered entry still occupies its rank.
func (s *TournamentService) rankParticipants(ctx context.Context, tournament *models.Tournament) ([]models.RankedParticipant, error) {
	limit := tournament.MaxParticipants
	if limit <= 0 {
		limit = 1000
	}
	participations, err := s.repo.ListParticipations(ctx, tournament.ID, limit)
	if err != nil {
		return nil, err
	}

	ranking := make([]models.RankedParticipant, 0, len(participations))
	for i, p := range participations {
		if p.Score < tournament.MinScore {
			continue
		}
		ranking = append(ranking, models.RankedParticipant{
			AccountID: p.AccountID,
			Rank:      i + 1,
			Score:     p.Score,
		})
	}
	return ranking, nil
}
