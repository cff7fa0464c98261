package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound       = errors.New("account not found")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrNotFound              = errors.New("record not found")
	ErrAlreadyJoined         = errors.New("already joined tournament")
	ErrTournamentClosed      = errors.New("tournament is not open for joining")
	ErrWithdrawalNotPending  = errors.New("withdrawal request is not pending")
	ErrWithdrawalNotApproved = errors.New("withdrawal request is not approved")
)

// Repository is the single write path to the ledger store. Every compound
// operation (balance delta + ledger entry, debit + withdrawal request,
// participant count + participation row) runs inside one gorm transaction so
// the paired writes are never observable separately.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// isUniqueViolation detects duplicate-key failures from postgres (pq error
// code 23505) and from the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key")
}
