package services

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

// Coins credited for completing a wellness practice the first time.
const PracticeRewardCoins = 2

// RewardService translates app events (ad watched, game ended, practice
// completed, tournament settled) into ledger credits. Every credit and its
// side records commit in one repository transaction.
type RewardService struct {
	repo *repository.Repository
	feed *BalanceFeed
}

func NewRewardService(repo *repository.Repository, feed *BalanceFeed) *RewardService {
	return &RewardService{repo: repo, feed: feed}
}

// CreditAdRevenue splits the gross revenue of a monetized ad view and credits
// the user share.
func (s *RewardService) CreditAdRevenue(ctx context.Context, accountID uint, adType models.AdType, gross decimal.Decimal) (*models.AdRevenueEvent, error) {
	if gross.IsNegative() {
		return nil, ErrInvalidAmount
	}

	event, balance, err := s.repo.CreditAdRevenue(ctx, accountID, adType, gross)
	if err != nil {
		return nil, fmt.Errorf("failed to credit ad revenue: %w", err)
	}

	s.feed.Publish(accountID, balance)
	log.Printf("Ad revenue credited: account=%d type=%s user_share=%s", accountID, adType, event.UserShare)
	return event, nil
}

// CreditGameScore records a finished game run and credits its coin reward.
// Raises the persisted score of any active tournament the account joined.
func (s *RewardService) CreditGameScore(ctx context.Context, accountID uint, score, durationSeconds int) (*models.GameScore, error) {
	if score < 0 {
		return nil, ErrInvalidAmount
	}

	gameScore, balance, err := s.repo.RecordGameScore(ctx, accountID, score, durationSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to record game score: %w", err)
	}
	s.feed.Publish(accountID, balance)

	if tournament, err := s.repo.GetCurrentTournament(ctx); err == nil {
		if err := s.repo.RaiseParticipationScore(ctx, tournament.ID, accountID, score); err != nil {
			log.Printf("Warning: failed to update tournament score for account %d: %v", accountID, err)
		}
	}

	log.Printf("Game score credited: account=%d score=%d coins=%d", accountID, score, gameScore.CoinsEarned)
	return gameScore, nil
}

// CreditTournamentPrize pays one ranked participant's share of the prize pool.
func (s *RewardService) CreditTournamentPrize(ctx context.Context, tournament *models.Tournament, accountID uint, rank, score int) (decimal.Decimal, error) {
	prize, balance, err := s.repo.CreditTournamentPrize(ctx, tournament, accountID, rank, score)
	if err != nil {
		return decimal.Zero, err
	}
	if prize.IsPositive() {
		s.feed.Publish(accountID, balance)
		log.Printf("Tournament prize credited: tournament=%s account=%d rank=%d prize=%s",
			tournament.ID, accountID, rank, prize)
	}
	return prize, nil
}

// CreditPracticeCompletion credits the fixed wellness reward once per remedy.
// Repeat completions report credited=false and leave the ledger untouched.
func (s *RewardService) CreditPracticeCompletion(ctx context.Context, accountID, remedyID uint) (bool, error) {
	credited, balance, err := s.repo.RecordPracticeCompletion(ctx, accountID, remedyID, PracticeRewardCoins)
	if err != nil {
		return false, fmt.Errorf("failed to record practice completion: %w", err)
	}
	if credited {
		s.feed.Publish(accountID, balance)
	}
	return credited, nil
}
