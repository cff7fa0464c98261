package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

func newTournamentEnv(t *testing.T) (*gorm.DB, *repository.Repository, *TournamentService) {
	t.Helper()

	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	rewards := NewRewardService(repo, NewBalanceFeed())
	return db, repo, NewTournamentService(repo, rewards)
}

func makeTournament(t *testing.T, service *TournamentService, pool int64) *models.Tournament {
	t.Helper()

	tournament := &models.Tournament{
		ID:              uuid.New(),
		Name:            "Weekly Cup",
		Type:            models.TournamentTypeWeekly,
		PrizePool:       pool,
		MaxParticipants: 100,
		StartsAt:        time.Now().Add(-time.Hour),
		EndsAt:          time.Now().Add(time.Hour),
		IsActive:        true,
	}
	if err := service.Create(context.Background(), tournament); err != nil {
		t.Fatalf("failed to create tournament: %v", err)
	}
	return tournament
}

func TestJoinTournament(t *testing.T) {
	db, _, service := newTournamentEnv(t)
	ctx := context.Background()

	account := newTestAccount(t, db, 1)
	tournament := makeTournament(t, service, 1000)

	participation, err := service.Join(ctx, tournament.ID, account.ID)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if participation.Score != 0 {
		t.Errorf("expected fresh entry score 0, got %d", participation.Score)
	}

	// Joining twice is a conflict, not a second entry.
	if _, err := service.Join(ctx, tournament.ID, account.ID); !errors.Is(err, repository.ErrAlreadyJoined) {
		t.Errorf("expected ErrAlreadyJoined, got %v", err)
	}

	var reloaded models.Tournament
	db.Where("id = ?", tournament.ID).First(&reloaded)
	if reloaded.Participants != 1 {
		t.Errorf("expected 1 participant, got %d", reloaded.Participants)
	}
}

func TestJoinClosedTournament(t *testing.T) {
	db, _, service := newTournamentEnv(t)
	ctx := context.Background()

	account := newTestAccount(t, db, 1)
	tournament := makeTournament(t, service, 1000)

	db.Model(&models.Tournament{}).Where("id = ?", tournament.ID).Update("is_active", false)

	if _, err := service.Join(ctx, tournament.ID, account.ID); !errors.Is(err, repository.ErrTournamentClosed) {
		t.Errorf("expected ErrTournamentClosed, got %v", err)
	}

	if _, err := service.Join(ctx, uuid.New(), account.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown tournament, got %v", err)
	}
}

func TestJoinFullTournament(t *testing.T) {
	db, _, service := newTournamentEnv(t)
	ctx := context.Background()

	tournament := makeTournament(t, service, 1000)
	db.Model(&models.Tournament{}).Where("id = ?", tournament.ID).Update("max_participants", 1)

	first := newTestAccount(t, db, 1)
	second := newTestAccount(t, db, 2)

	if _, err := service.Join(ctx, tournament.ID, first.ID); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	if _, err := service.Join(ctx, tournament.ID, second.ID); !errors.Is(err, repository.ErrTournamentClosed) {
		t.Errorf("expected ErrTournamentClosed when full, got %v", err)
	}
}

func TestSettleNowPaysPrizeSplit(t *testing.T) {
	db, repo, service := newTournamentEnv(t)
	ctx := context.Background()

	tournament := makeTournament(t, service, 1000)

	scores := []int{400, 300, 200, 100}
	accounts := make([]*models.Account, len(scores))
	for i, score := range scores {
		accounts[i] = newTestAccount(t, db, uint(i+1))
		if _, err := service.Join(ctx, tournament.ID, accounts[i].ID); err != nil {
			t.Fatalf("join failed: %v", err)
		}
		if err := repo.RaiseParticipationScore(ctx, tournament.ID, accounts[i].ID, score); err != nil {
			t.Fatalf("failed to set score: %v", err)
		}
	}

	if err := service.SettleNow(ctx, tournament.ID); err != nil {
		t.Fatalf("SettleNow failed: %v", err)
	}

	// Pool 1000 splits 50/30/20 across the podium; rank 4 gets nothing.
	expected := []int64{500, 300, 200, 0}
	for i, account := range accounts {
		var reloaded models.Account
		db.Where("id = ?", account.ID).First(&reloaded)
		if !reloaded.Balance.Equal(decimal.NewFromInt(expected[i])) {
			t.Errorf("rank %d: expected balance %d, got %s", i+1, expected[i], reloaded.Balance)
		}
	}

	// Winner gets the tournament win counted.
	var winner models.Account
	db.Where("id = ?", accounts[0].ID).First(&winner)
	if winner.TournamentWins != 1 {
		t.Errorf("expected 1 tournament win, got %d", winner.TournamentWins)
	}

	var settled models.Tournament
	db.Where("id = ?", tournament.ID).First(&settled)
	if !settled.Settled || settled.IsActive {
		t.Errorf("expected settled and inactive, got settled=%v active=%v", settled.Settled, settled.IsActive)
	}

	// Settling twice must not pay twice.
	if err := service.SettleNow(ctx, tournament.ID); !errors.Is(err, repository.ErrTournamentClosed) {
		t.Errorf("expected ErrTournamentClosed on re-settle, got %v", err)
	}
}

func TestSettleEndedSkipsRunningTournaments(t *testing.T) {
	db, repo, service := newTournamentEnv(t)
	ctx := context.Background()

	account := newTestAccount(t, db, 1)

	ended := makeTournament(t, service, 1000)
	db.Model(&models.Tournament{}).Where("id = ?", ended.ID).
		Update("ends_at", time.Now().Add(-time.Minute))
	running := makeTournament(t, service, 500)

	if _, err := service.Join(ctx, ended.ID, account.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if err := repo.RaiseParticipationScore(ctx, ended.ID, account.ID, 50); err != nil {
		t.Fatalf("failed to set score: %v", err)
	}

	settled, err := service.SettleEnded(ctx, time.Now())
	if err != nil {
		t.Fatalf("SettleEnded failed: %v", err)
	}
	if settled != 1 {
		t.Errorf("expected 1 settled tournament, got %d", settled)
	}

	var stillRunning models.Tournament
	db.Where("id = ?", running.ID).First(&stillRunning)
	if stillRunning.Settled {
		t.Error("running tournament must not be settled")
	}
}

func TestSettleSkipsScoresBelowMinimum(t *testing.T) {
	db, repo, service := newTournamentEnv(t)
	ctx := context.Background()

	tournament := makeTournament(t, service, 1000)
	db.Model(&models.Tournament{}).Where("id = ?", tournament.ID).Update("min_score", 100)
	tournament.MinScore = 100

	qualified := newTestAccount(t, db, 1)
	unqualified := newTestAccount(t, db, 2)
	for _, account := range []*models.Account{qualified, unqualified} {
		if _, err := service.Join(ctx, tournament.ID, account.ID); err != nil {
			t.Fatalf("join failed: %v", err)
		}
	}
	repo.RaiseParticipationScore(ctx, tournament.ID, qualified.ID, 150)
	repo.RaiseParticipationScore(ctx, tournament.ID, unqualified.ID, 40)

	if err := service.SettleNow(ctx, tournament.ID); err != nil {
		t.Fatalf("SettleNow failed: %v", err)
	}

	var reloaded models.Account
	db.Where("id = ?", qualified.ID).First(&reloaded)
	if !reloaded.Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected qualified balance 500, got %s", reloaded.Balance)
	}
	db.Where("id = ?", unqualified.ID).First(&reloaded)
	if !reloaded.Balance.IsZero() {
		t.Errorf("expected unqualified balance 0, got %s", reloaded.Balance)
	}
}

func TestSettleRetrySkipsPaidEntries(t *testing.T) {
	db, repo, service := newTournamentEnv(t)
	ctx := context.Background()

	tournament := makeTournament(t, service, 1000)

	winner := newTestAccount(t, db, 1)
	runnerUp := newTestAccount(t, db, 2)
	for _, account := range []*models.Account{winner, runnerUp} {
		if _, err := service.Join(ctx, tournament.ID, account.ID); err != nil {
			t.Fatalf("join failed: %v", err)
		}
	}
	repo.RaiseParticipationScore(ctx, tournament.ID, winner.ID, 200)
	repo.RaiseParticipationScore(ctx, tournament.ID, runnerUp.ID, 100)

	// Drop the runner-up's account so the second credit fails mid-settlement.
	if err := db.Delete(&models.Account{}, runnerUp.ID).Error; err != nil {
		t.Fatalf("failed to delete account: %v", err)
	}

	if err := service.SettleNow(ctx, tournament.ID); err == nil {
		t.Fatal("expected settlement to fail on the missing account")
	}

	var reloaded models.Tournament
	db.Where("id = ?", tournament.ID).First(&reloaded)
	if reloaded.Settled {
		t.Fatal("partially paid tournament must not be marked settled")
	}

	// Restore the account and retry. Entries paid the first time stay paid
	// once, not twice.
	restored := &models.Account{ID: runnerUp.ID, UserID: runnerUp.UserID, Currency: "USD"}
	if err := db.Create(restored).Error; err != nil {
		t.Fatalf("failed to restore account: %v", err)
	}
	if err := service.SettleNow(ctx, tournament.ID); err != nil {
		t.Fatalf("settlement retry failed: %v", err)
	}

	var account models.Account
	db.Where("id = ?", winner.ID).First(&account)
	if !account.Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected winner balance 500 after retry, got %s", account.Balance)
	}
	if account.TournamentWins != 1 {
		t.Errorf("expected 1 tournament win after retry, got %d", account.TournamentWins)
	}
	db.Where("id = ?", runnerUp.ID).First(&account)
	if !account.Balance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected runner-up balance 300, got %s", account.Balance)
	}

	var records int64
	db.Model(&models.TransactionRecord{}).Where("account_id = ?", winner.ID).Count(&records)
	if records != 1 {
		t.Errorf("expected a single ledger entry for the winner, got %d", records)
	}

	db.Where("id = ?", tournament.ID).First(&reloaded)
	if !reloaded.Settled {
		t.Error("expected tournament settled after retry")
	}
}

func TestSettleRanksWithoutParticipantCap(t *testing.T) {
	db, _, service := newTournamentEnv(t)
	ctx := context.Background()

	account := newTestAccount(t, db, 1)
	tournament := makeTournament(t, service, 1000)

	if _, err := service.Join(ctx, tournament.ID, account.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	db.Model(&models.TournamentParticipation{}).
		Where("tournament_id = ?", tournament.ID).Update("score", 120)

	// A cap of zero means uncapped, not an empty ranking.
	db.Model(&models.Tournament{}).Where("id = ?", tournament.ID).
		Update("max_participants", 0)

	if err := service.SettleNow(ctx, tournament.ID); err != nil {
		t.Fatalf("SettleNow failed: %v", err)
	}

	var reloaded models.Account
	db.Where("id = ?", account.ID).First(&reloaded)
	if !reloaded.Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected winner balance 500, got %s", reloaded.Balance)
	}
}
