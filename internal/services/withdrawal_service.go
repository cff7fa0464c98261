package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

// WithdrawalService validates and records payout requests. The requested
// amount is debited at request time; the back-office review either lets the
// payout proceed or refunds the debit.
type WithdrawalService struct {
	repo          *repository.Repository
	feed          *BalanceFeed
	minWithdrawal decimal.Decimal
}

func NewWithdrawalService(repo *repository.Repository, feed *BalanceFeed, minWithdrawal decimal.Decimal) *WithdrawalService {
	return &WithdrawalService{
		repo:          repo,
		feed:          feed,
		minWithdrawal: minWithdrawal,
	}
}

// RequestWithdrawal validates the amount and destination, then debits the
// balance and creates the PENDING request and ledger entry in one atomic
// operation.
func (s *WithdrawalService) RequestWithdrawal(ctx context.Context, accountID uint, amount decimal.Decimal, dest models.Destination) (*models.WithdrawalRequest, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if dest.Empty() {
		return nil, ErrMissingDestination
	}
	if amount.LessThan(s.minWithdrawal) {
		return nil, ErrBelowMinimum
	}

	request, balance, err := s.repo.CreateWithdrawal(ctx, accountID, amount, dest)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(accountID, balance)
	log.Printf("Withdrawal requested: account=%d amount=%s request=%s", accountID, amount, request.ID)
	return request, nil
}

// ListWithdrawals returns an account's withdrawal requests, newest first.
func (s *WithdrawalService) ListWithdrawals(ctx context.Context, accountID uint) ([]models.WithdrawalRequest, error) {
	return s.repo.ListWithdrawals(ctx, accountID)
}

// ReviewQueue returns requests in a given status across all accounts, oldest
// first.
func (s *WithdrawalService) ReviewQueue(ctx context.Context, status models.WithdrawalStatus, limit int) ([]models.WithdrawalRequest, error) {
	return s.repo.ListWithdrawalsByStatus(ctx, status, limit)
}

// ReviewWithdrawal is the back-office transition out of PENDING. A rejection
// refunds the debited amount and marks the original ledger entry failed.
func (s *WithdrawalService) ReviewWithdrawal(ctx context.Context, requestID uuid.UUID, approve bool) (*models.WithdrawalRequest, error) {
	request, balance, err := s.repo.ReviewWithdrawal(ctx, requestID, approve)
	if err != nil {
		return nil, err
	}

	if request.Status == models.WithdrawalStatusRejected {
		s.feed.Publish(request.AccountID, balance)
	}
	log.Printf("Withdrawal reviewed: request=%s status=%s", request.ID, request.Status)
	return request, nil
}

// CompleteWithdrawal is the back-office terminal transition after approval.
func (s *WithdrawalService) CompleteWithdrawal(ctx context.Context, requestID uuid.UUID) (*models.WithdrawalRequest, error) {
	request, err := s.repo.CompleteWithdrawal(ctx, requestID)
	if err != nil {
		return nil, err
	}
	log.Printf("Withdrawal completed: request=%s amount=%s", request.ID, request.Amount)
	return request, nil
}
