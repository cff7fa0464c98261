package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

func TestCreditGameScoreRewards(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := repository.NewRepository(db)
	service := NewRewardService(repo, NewBalanceFeed())
	account := newTestAccount(t, db, 1)

	// A zero score still pays the base reward.
	gameScore, err := service.CreditGameScore(ctx, account.ID, 0, 30)
	if err != nil {
		t.Fatalf("CreditGameScore failed: %v", err)
	}
	if gameScore.CoinsEarned != 5 {
		t.Errorf("expected 5 coins for score 0, got %d", gameScore.CoinsEarned)
	}
	if !gameScore.IsHighScore {
		t.Error("expected first score to be the high score")
	}
	if gameScore.GameName != models.DefaultGameName {
		t.Errorf("expected game name %q, got %q", models.DefaultGameName, gameScore.GameName)
	}

	// The ledger entry names the game, not an empty placeholder.
	var record models.TransactionRecord
	if err := db.Where("account_id = ?", account.ID).First(&record).Error; err != nil {
		t.Fatalf("failed to read transaction record: %v", err)
	}
	if !strings.Contains(record.Description, models.DefaultGameName) {
		t.Errorf("ledger description missing game name: %q", record.Description)
	}

	// Score 100 pays base 5 plus 10 from the per-point rate.
	gameScore, err = service.CreditGameScore(ctx, account.ID, 100, 60)
	if err != nil {
		t.Fatalf("CreditGameScore failed: %v", err)
	}
	if gameScore.CoinsEarned != 15 {
		t.Errorf("expected 15 coins for score 100, got %d", gameScore.CoinsEarned)
	}

	var updated models.Account
	if err := db.Where("id = ?", account.ID).First(&updated).Error; err != nil {
		t.Fatalf("failed to reload account: %v", err)
	}
	if !updated.Balance.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected balance 20, got %s", updated.Balance)
	}
	if updated.GameHighScore != 100 {
		t.Errorf("expected high score 100, got %d", updated.GameHighScore)
	}
	if updated.TotalGamesPlayed != 2 {
		t.Errorf("expected 2 games played, got %d", updated.TotalGamesPlayed)
	}

	// A lower run must not move the high score down.
	if _, err := service.CreditGameScore(ctx, account.ID, 40, 45); err != nil {
		t.Fatalf("CreditGameScore failed: %v", err)
	}
	db.Where("id = ?", account.ID).First(&updated)
	if updated.GameHighScore != 100 {
		t.Errorf("high score moved down: got %d", updated.GameHighScore)
	}
}

func TestCreditAdRevenueSplit(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := repository.NewRepository(db)
	service := NewRewardService(repo, NewBalanceFeed())
	account := newTestAccount(t, db, 1)

	gross := decimal.NewFromFloat(0.05)
	event, err := service.CreditAdRevenue(ctx, account.ID, models.AdTypeRewarded, gross)
	if err != nil {
		t.Fatalf("CreditAdRevenue failed: %v", err)
	}

	if !event.UserShare.Equal(decimal.NewFromFloat(0.0005)) {
		t.Errorf("expected user share 0.0005, got %s", event.UserShare)
	}
	if !event.PlatformShare.Equal(decimal.NewFromFloat(0.0495)) {
		t.Errorf("expected platform share 0.0495, got %s", event.PlatformShare)
	}
	if !event.UserShare.Add(event.PlatformShare).Equal(gross) {
		t.Errorf("shares do not sum to gross: %s + %s != %s",
			event.UserShare, event.PlatformShare, gross)
	}

	var updated models.Account
	db.Where("id = ?", account.ID).First(&updated)
	if !updated.Balance.Equal(event.UserShare) {
		t.Errorf("expected balance %s, got %s", event.UserShare, updated.Balance)
	}
	if !updated.TotalEarnings.Equal(event.UserShare) {
		t.Errorf("expected total earnings %s, got %s", event.UserShare, updated.TotalEarnings)
	}

	// Negative gross is rejected before any write.
	if _, err := service.CreditAdRevenue(ctx, account.ID, models.AdTypeRewarded, decimal.NewFromFloat(-0.01)); err != ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreditPracticeCompletionOneShot(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := repository.NewRepository(db)
	service := NewRewardService(repo, NewBalanceFeed())
	account := newTestAccount(t, db, 1)

	credited, err := service.CreditPracticeCompletion(ctx, account.ID, 7)
	if err != nil {
		t.Fatalf("CreditPracticeCompletion failed: %v", err)
	}
	if !credited {
		t.Fatal("expected first completion to credit")
	}

	var updated models.Account
	db.Where("id = ?", account.ID).First(&updated)
	if !updated.Balance.Equal(decimal.NewFromInt(PracticeRewardCoins)) {
		t.Errorf("expected balance %d, got %s", PracticeRewardCoins, updated.Balance)
	}

	// Repeat completion succeeds but pays nothing.
	credited, err = service.CreditPracticeCompletion(ctx, account.ID, 7)
	if err != nil {
		t.Fatalf("repeat completion failed: %v", err)
	}
	if credited {
		t.Error("expected repeat completion not to credit")
	}

	db.Where("id = ?", account.ID).First(&updated)
	if !updated.Balance.Equal(decimal.NewFromInt(PracticeRewardCoins)) {
		t.Errorf("balance changed on repeat completion: got %s", updated.Balance)
	}
}

func TestCreditGameScoreRaisesTournamentStanding(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := repository.NewRepository(db)
	feed := NewBalanceFeed()
	rewards := NewRewardService(repo, feed)
	tournaments := NewTournamentService(repo, rewards)
	account := newTestAccount(t, db, 1)

	tournament := &models.Tournament{
		ID:              uuid.New(),
		Name:            "Weekly Cup",
		Type:            models.TournamentTypeWeekly,
		PrizePool:       1000,
		MaxParticipants: 100,
		StartsAt:        time.Now().Add(-time.Hour),
		EndsAt:          time.Now().Add(time.Hour),
		IsActive:        true,
	}
	if err := tournaments.Create(ctx, tournament); err != nil {
		t.Fatalf("failed to create tournament: %v", err)
	}
	if _, err := tournaments.Join(ctx, tournament.ID, account.ID); err != nil {
		t.Fatalf("failed to join tournament: %v", err)
	}

	if _, err := rewards.CreditGameScore(ctx, account.ID, 80, 60); err != nil {
		t.Fatalf("CreditGameScore failed: %v", err)
	}

	participation, err := repo.GetParticipation(ctx, tournament.ID, account.ID)
	if err != nil {
		t.Fatalf("failed to read participation: %v", err)
	}
	if participation.Score != 80 {
		t.Errorf("expected tournament score 80, got %d", participation.Score)
	}

	// A worse run must not lower the standing.
	if _, err := rewards.CreditGameScore(ctx, account.ID, 30, 60); err != nil {
		t.Fatalf("CreditGameScore failed: %v", err)
	}
	participation, _ = repo.GetParticipation(ctx, tournament.ID, account.ID)
	if participation.Score != 80 {
		t.Errorf("tournament score moved down: got %d", participation.Score)
	}
}

func TestCreditGameScoreIgnoresEndedTournament(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := repository.NewRepository(db)
	rewards := NewRewardService(repo, NewBalanceFeed())
	tournaments := NewTournamentService(repo, rewards)
	account := newTestAccount(t, db, 1)

	tournament := &models.Tournament{
		ID:              uuid.New(),
		Name:            "Weekly Cup",
		Type:            models.TournamentTypeWeekly,
		PrizePool:       1000,
		MaxParticipants: 100,
		StartsAt:        time.Now().Add(-2 * time.Hour),
		EndsAt:          time.Now().Add(time.Hour),
		IsActive:        true,
	}
	if err := tournaments.Create(ctx, tournament); err != nil {
		t.Fatalf("failed to create tournament: %v", err)
	}
	if _, err := tournaments.Join(ctx, tournament.ID, account.ID); err != nil {
		t.Fatalf("failed to join tournament: %v", err)
	}

	// Past its end time but not yet settled: standings are frozen.
	db.Model(&models.Tournament{}).Where("id = ?", tournament.ID).
		Update("ends_at", time.Now().Add(-time.Minute))

	if _, err := rewards.CreditGameScore(ctx, account.ID, 90, 60); err != nil {
		t.Fatalf("CreditGameScore failed: %v", err)
	}

	participation, err := repo.GetParticipation(ctx, tournament.ID, account.ID)
	if err != nil {
		t.Fatalf("failed to read participation: %v", err)
	}
	if participation.Score != 0 {
		t.Errorf("ended tournament standing moved: got %d", participation.Score)
	}
}
