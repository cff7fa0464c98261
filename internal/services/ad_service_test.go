package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

func TestAdWatchedUsesDefaultEstimate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := repository.NewRepository(db)
	service := NewAdService(repo, NewRewardService(repo, NewBalanceFeed()))
	account := newTestAccount(t, db, 1)

	// No estimate from the SDK: the rewarded default of 0.05 applies.
	event, err := service.AdWatched(ctx, account.ID, models.AdTypeRewarded, decimal.Zero)
	if err != nil {
		t.Fatalf("AdWatched failed: %v", err)
	}
	if !event.Revenue.Equal(decimal.NewFromFloat(0.05)) {
		t.Errorf("expected default revenue 0.05, got %s", event.Revenue)
	}

	// An explicit estimate wins over the default.
	event, err = service.AdWatched(ctx, account.ID, models.AdTypeInterstitial, decimal.NewFromFloat(0.02))
	if err != nil {
		t.Fatalf("AdWatched failed: %v", err)
	}
	if !event.Revenue.Equal(decimal.NewFromFloat(0.02)) {
		t.Errorf("expected revenue 0.02, got %s", event.Revenue)
	}

	// Both views also logged impressions.
	var impressions int64
	db.Model(&models.AdImpression{}).Count(&impressions)
	if impressions != 2 {
		t.Errorf("expected 2 impressions, got %d", impressions)
	}
}

func TestRecordImpressionWritesAnalyticsRow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := repository.NewRepository(db)
	service := NewAdService(repo, NewRewardService(repo, NewBalanceFeed()))

	if err := service.RecordImpression(ctx, models.AdTypeBanner); err != nil {
		t.Fatalf("RecordImpression failed: %v", err)
	}

	var impression models.AdImpression
	if err := db.First(&impression).Error; err != nil {
		t.Fatalf("no impression row written: %v", err)
	}
	if impression.AdType != models.AdTypeBanner {
		t.Errorf("expected banner impression, got %s", impression.AdType)
	}
}
