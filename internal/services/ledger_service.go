package services

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

// LedgerService is the read/subscribe surface of the wallet ledger plus the
// corrective clamp. All reward and withdrawal mutations go through the more
// specific services, which share the same repository and feed.
type LedgerService struct {
	repo *repository.Repository
	feed *BalanceFeed
}

func NewLedgerService(repo *repository.Repository, feed *BalanceFeed) *LedgerService {
	return &LedgerService{repo: repo, feed: feed}
}

// AccountForUser returns the ledger account for a user, creating it with a
// zero balance on first use.
func (s *LedgerService) AccountForUser(ctx context.Context, userID uint) (*models.Account, error) {
	return s.repo.GetOrCreateAccount(ctx, userID)
}

// GetBalance returns the current balance of an account.
func (s *LedgerService) GetBalance(ctx context.Context, accountID uint) (decimal.Decimal, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// AdjustBalance atomically applies a delta and appends the matching ledger
// entry, then pushes the committed balance to subscribers.
func (s *LedgerService) AdjustBalance(ctx context.Context, accountID uint, delta decimal.Decimal, meta models.TransactionMeta) (*models.TransactionRecord, error) {
	record, balance, err := s.repo.AdjustBalance(ctx, accountID, delta, meta)
	if err != nil {
		return nil, err
	}
	s.feed.Publish(accountID, balance)
	return record, nil
}

// SubscribeBalance returns a live feed of balance updates for an account. The
// first value is the current balance so subscribers start from a snapshot.
func (s *LedgerService) SubscribeBalance(ctx context.Context, accountID uint) (<-chan decimal.Decimal, func(), error) {
	balance, err := s.GetBalance(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	ch, unsubscribe := s.feed.Subscribe(accountID)
	s.feed.Publish(accountID, balance)
	return ch, unsubscribe, nil
}

// ClampNonNegative overwrites a negative balance with zero. Idempotent.
func (s *LedgerService) ClampNonNegative(ctx context.Context, accountID uint) error {
	clamped, balance, err := s.repo.ClampNonNegative(ctx, accountID)
	if err != nil {
		return err
	}
	if clamped {
		log.Printf("Clamped negative balance to zero for account %d", accountID)
		s.feed.Publish(accountID, balance)
	}
	return nil
}

// Transactions returns an account's ledger entries, newest first.
func (s *LedgerService) Transactions(ctx context.Context, accountID uint, limit, offset int) ([]models.TransactionRecord, error) {
	return s.repo.ListTransactions(ctx, accountID, limit, offset)
}

// GameScores returns an account's game history, newest first.
func (s *LedgerService) GameScores(ctx context.Context, accountID uint, limit int) ([]models.GameScore, error) {
	return s.repo.ListGameScores(ctx, accountID, limit)
}
