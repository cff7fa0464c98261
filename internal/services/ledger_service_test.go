package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

func TestAdjustBalanceNeverGoesNegative(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := repository.NewRepository(db)
	service := NewLedgerService(repo, NewBalanceFeed())
	account := newTestAccount(t, db, 1)

	if _, err := service.AdjustBalance(ctx, account.ID, decimal.NewFromInt(100), models.TransactionMeta{
		Type:        models.TransactionTypeReward,
		Description: "signup bonus",
	}); err != nil {
		t.Fatalf("credit failed: %v", err)
	}

	// Overdraw must fail and leave the balance untouched.
	_, err := service.AdjustBalance(ctx, account.ID, decimal.NewFromInt(-150), models.TransactionMeta{
		Type: models.TransactionTypeWithdrawalRequest,
	})
	if !errors.Is(err, repository.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	balance, err := service.GetBalance(ctx, account.ID)
	if err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance 100 after failed debit, got %s", balance)
	}

	// A covered debit goes through.
	if _, err := service.AdjustBalance(ctx, account.ID, decimal.NewFromInt(-50), models.TransactionMeta{
		Type: models.TransactionTypeWithdrawalRequest,
	}); err != nil {
		t.Fatalf("debit failed: %v", err)
	}

	balance, _ = service.GetBalance(ctx, account.ID)
	if !balance.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected balance 50, got %s", balance)
	}

	// The failed debit must not have left a ledger entry.
	records, err := service.Transactions(ctx, account.ID, 10, 0)
	if err != nil {
		t.Fatalf("failed to list transactions: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 ledger entries, got %d", len(records))
	}
}

func TestClampNonNegativeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := repository.NewRepository(db)
	service := NewLedgerService(repo, NewBalanceFeed())
	account := newTestAccount(t, db, 1)

	// Corrupt the balance directly; the corrective path exists exactly for
	// rows damaged outside the guarded write path.
	if err := db.Model(&models.Account{}).Where("id = ?", account.ID).
		Update("balance", decimal.NewFromInt(-30)).Error; err != nil {
		t.Fatalf("failed to corrupt balance: %v", err)
	}

	if err := service.ClampNonNegative(ctx, account.ID); err != nil {
		t.Fatalf("clamp failed: %v", err)
	}
	balance, _ := service.GetBalance(ctx, account.ID)
	if !balance.IsZero() {
		t.Errorf("expected balance 0 after clamp, got %s", balance)
	}

	// Running it again must be a no-op.
	if err := service.ClampNonNegative(ctx, account.ID); err != nil {
		t.Fatalf("second clamp failed: %v", err)
	}
	balance, _ = service.GetBalance(ctx, account.ID)
	if !balance.IsZero() {
		t.Errorf("expected balance 0 after second clamp, got %s", balance)
	}
}

func TestSubscribeBalanceDeliversUpdates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := repository.NewRepository(db)
	service := NewLedgerService(repo, NewBalanceFeed())
	account := newTestAccount(t, db, 1)

	updates, unsubscribe, err := service.SubscribeBalance(ctx, account.ID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer unsubscribe()

	// First value is the snapshot.
	select {
	case snapshot := <-updates:
		if !snapshot.IsZero() {
			t.Errorf("expected snapshot 0, got %s", snapshot)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}

	if _, err := service.AdjustBalance(ctx, account.ID, decimal.NewFromInt(25), models.TransactionMeta{
		Type: models.TransactionTypeReward,
	}); err != nil {
		t.Fatalf("credit failed: %v", err)
	}

	select {
	case updated := <-updates:
		if !updated.Equal(decimal.NewFromInt(25)) {
			t.Errorf("expected update 25, got %s", updated)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
	}

	// After unsubscribing the channel closes and publishes stop arriving.
	unsubscribe()
	if _, open := <-updates; open {
		t.Error("expected channel closed after unsubscribe")
	}
}
