package services

import (
	"context"

	"github.com/shopspring/decimal"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

// Default revenue estimates per monetized ad view, used when the SDK callback
// carries no amount.
var defaultAdRevenue = map[models.AdType]decimal.Decimal{
	models.AdTypeInterstitial: decimal.NewFromFloat(0.01),
	models.AdTypeRewarded:     decimal.NewFromFloat(0.05),
}

// AdService is the server side of the ad SDK callbacks: impressions for
// analytics, watched events for revenue sharing.
type AdService struct {
	repo    *repository.Repository
	rewards *RewardService
}

func NewAdService(repo *repository.Repository, rewards *RewardService) *AdService {
	return &AdService{repo: repo, rewards: rewards}
}

// RecordImpression logs one shown ad. Banner loads come through here only.
func (s *AdService) RecordImpression(ctx context.Context, adType models.AdType) error {
	return s.repo.CreateAdImpression(ctx, adType)
}

// AdWatched handles a monetized view: one impression row plus the revenue
// split credit. A zero revenue estimate falls back to the per-type default.
func (s *AdService) AdWatched(ctx context.Context, accountID uint, adType models.AdType, revenueEstimate decimal.Decimal) (*models.AdRevenueEvent, error) {
	if revenueEstimate.IsZero() {
		revenueEstimate = defaultAdRevenue[adType]
	}

	if err := s.repo.CreateAdImpression(ctx, adType); err != nil {
		return nil, err
	}
	return s.rewards.CreditAdRevenue(ctx, accountID, adType, revenueEstimate)
}
