package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

var testDestination = models.Destination{
	BankName:          "State Bank",
	AccountNumber:     "000111222333",
	AccountHolderName: "Test User",
}

func newWithdrawalEnv(t *testing.T) (*WithdrawalService, *LedgerService, *models.Account) {
	t.Helper()

	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	feed := NewBalanceFeed()
	ledger := NewLedgerService(repo, feed)
	withdrawals := NewWithdrawalService(repo, feed, decimal.NewFromInt(100))
	account := newTestAccount(t, db, 1)
	return withdrawals, ledger, account
}

func fund(t *testing.T, ledger *LedgerService, accountID uint, amount int64) {
	t.Helper()
	_, err := ledger.AdjustBalance(context.Background(), accountID, decimal.NewFromInt(amount), models.TransactionMeta{
		Type:        models.TransactionTypeReward,
		Description: "test funding",
	})
	if err != nil {
		t.Fatalf("failed to fund account: %v", err)
	}
}

func TestRequestWithdrawalValidation(t *testing.T) {
	withdrawals, ledger, account := newWithdrawalEnv(t)
	ctx := context.Background()
	fund(t, ledger, account.ID, 500)

	if _, err := withdrawals.RequestWithdrawal(ctx, account.ID, decimal.Zero, testDestination); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := withdrawals.RequestWithdrawal(ctx, account.ID, decimal.NewFromInt(-10), testDestination); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative amount: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := withdrawals.RequestWithdrawal(ctx, account.ID, decimal.NewFromInt(150), models.Destination{}); !errors.Is(err, ErrMissingDestination) {
		t.Errorf("empty destination: expected ErrMissingDestination, got %v", err)
	}
	if _, err := withdrawals.RequestWithdrawal(ctx, account.ID, decimal.NewFromInt(50), testDestination); !errors.Is(err, ErrBelowMinimum) {
		t.Errorf("below minimum: expected ErrBelowMinimum, got %v", err)
	}

	// A UPI ID alone is a valid destination.
	if _, err := withdrawals.RequestWithdrawal(ctx, account.ID, decimal.NewFromInt(100), models.Destination{UpiID: "user@upi"}); err != nil {
		t.Errorf("UPI destination rejected: %v", err)
	}

	// Nothing above besides the UPI request may have touched the balance.
	balance, _ := ledger.GetBalance(ctx, account.ID)
	if !balance.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected balance 400, got %s", balance)
	}
}

func TestRequestWithdrawalInsufficientFunds(t *testing.T) {
	withdrawals, ledger, account := newWithdrawalEnv(t)
	ctx := context.Background()
	fund(t, ledger, account.ID, 150)

	_, err := withdrawals.RequestWithdrawal(ctx, account.ID, decimal.NewFromInt(200), testDestination)
	if !errors.Is(err, repository.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	balance, _ := ledger.GetBalance(ctx, account.ID)
	if !balance.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected balance unchanged at 150, got %s", balance)
	}
	requests, _ := withdrawals.ListWithdrawals(ctx, account.ID)
	if len(requests) != 0 {
		t.Errorf("expected no withdrawal requests, got %d", len(requests))
	}
}

func TestRequestWithdrawalDebitsUpFront(t *testing.T) {
	withdrawals, ledger, account := newWithdrawalEnv(t)
	ctx := context.Background()
	fund(t, ledger, account.ID, 150)

	request, err := withdrawals.RequestWithdrawal(ctx, account.ID, decimal.NewFromInt(100), testDestination)
	if err != nil {
		t.Fatalf("RequestWithdrawal failed: %v", err)
	}
	if request.Status != models.WithdrawalStatusPending {
		t.Errorf("expected PENDING request, got %s", request.Status)
	}

	balance, _ := ledger.GetBalance(ctx, account.ID)
	if !balance.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected balance 50 after debit, got %s", balance)
	}

	// The ledger entry mirrors the request: negative amount, PENDING status.
	records, _ := ledger.Transactions(ctx, account.ID, 10, 0)
	var entry *models.TransactionRecord
	for i := range records {
		if records[i].Type == models.TransactionTypeWithdrawalRequest {
			entry = &records[i]
		}
	}
	if entry == nil {
		t.Fatal("no withdrawal ledger entry written")
	}
	if !entry.Amount.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("expected ledger amount -100, got %s", entry.Amount)
	}
	if entry.Status != models.TransactionStatusPending {
		t.Errorf("expected PENDING ledger entry, got %s", entry.Status)
	}
	if entry.ReferenceID == nil || *entry.ReferenceID != request.ID {
		t.Error("ledger entry does not reference the withdrawal request")
	}
}

func TestReviewWithdrawalRejectionRefunds(t *testing.T) {
	withdrawals, ledger, account := newWithdrawalEnv(t)
	ctx := context.Background()
	fund(t, ledger, account.ID, 150)

	request, err := withdrawals.RequestWithdrawal(ctx, account.ID, decimal.NewFromInt(100), testDestination)
	if err != nil {
		t.Fatalf("RequestWithdrawal failed: %v", err)
	}

	rejected, err := withdrawals.ReviewWithdrawal(ctx, request.ID, false)
	if err != nil {
		t.Fatalf("ReviewWithdrawal failed: %v", err)
	}
	if rejected.Status != models.WithdrawalStatusRejected {
		t.Errorf("expected REJECTED, got %s", rejected.Status)
	}

	balance, _ := ledger.GetBalance(ctx, account.ID)
	if !balance.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected balance restored to 150, got %s", balance)
	}

	records, _ := ledger.Transactions(ctx, account.ID, 10, 0)
	var sawReversal, sawFailed bool
	for _, record := range records {
		if record.Type == models.TransactionTypeWithdrawalReversal && record.Amount.Equal(decimal.NewFromInt(100)) {
			sawReversal = true
		}
		if record.Type == models.TransactionTypeWithdrawalRequest && record.Status == models.TransactionStatusFailed {
			sawFailed = true
		}
	}
	if !sawReversal {
		t.Error("expected a compensating reversal entry")
	}
	if !sawFailed {
		t.Error("expected the original entry marked FAILED")
	}

	// A second review of the same request must fail.
	if _, err := withdrawals.ReviewWithdrawal(ctx, request.ID, true); !errors.Is(err, repository.ErrWithdrawalNotPending) {
		t.Errorf("expected ErrWithdrawalNotPending, got %v", err)
	}
}

func TestCompleteWithdrawalLifecycle(t *testing.T) {
	withdrawals, ledger, account := newWithdrawalEnv(t)
	ctx := context.Background()
	fund(t, ledger, account.ID, 200)

	request, err := withdrawals.RequestWithdrawal(ctx, account.ID, decimal.NewFromInt(120), testDestination)
	if err != nil {
		t.Fatalf("RequestWithdrawal failed: %v", err)
	}

	// Completing before approval is rejected.
	if _, err := withdrawals.CompleteWithdrawal(ctx, request.ID); !errors.Is(err, repository.ErrWithdrawalNotApproved) {
		t.Errorf("expected ErrWithdrawalNotApproved, got %v", err)
	}

	if _, err := withdrawals.ReviewWithdrawal(ctx, request.ID, true); err != nil {
		t.Fatalf("approval failed: %v", err)
	}

	completed, err := withdrawals.CompleteWithdrawal(ctx, request.ID)
	if err != nil {
		t.Fatalf("CompleteWithdrawal failed: %v", err)
	}
	if completed.Status != models.WithdrawalStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", completed.Status)
	}

	// Completion does not move money again; the debit was taken at request
	// time.
	balance, _ := ledger.GetBalance(ctx, account.ID)
	if !balance.Equal(decimal.NewFromInt(80)) {
		t.Errorf("expected balance 80, got %s", balance)
	}

	records, _ := ledger.Transactions(ctx, account.ID, 10, 0)
	var sawMarker, sawCompleted bool
	for _, record := range records {
		if record.Type == models.TransactionTypeWithdrawalCompletion && record.Amount.IsZero() {
			sawMarker = true
		}
		if record.Type == models.TransactionTypeWithdrawalRequest && record.Status == models.TransactionStatusCompleted {
			sawCompleted = true
		}
	}
	if !sawMarker {
		t.Error("expected a zero-amount completion marker")
	}
	if !sawCompleted {
		t.Error("expected the original entry marked COMPLETED")
	}
}
