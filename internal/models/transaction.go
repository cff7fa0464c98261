package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeReward               TransactionType = "REWARD"
	TransactionTypeWithdrawalRequest    TransactionType = "WITHDRAWAL_REQUEST"
	TransactionTypeWithdrawalCompletion TransactionType = "WITHDRAWAL_COMPLETION"
	TransactionTypeWithdrawalReversal   TransactionType = "WITHDRAWAL_REVERSAL"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// TransactionRecord is an append-only ledger entry. Every balance mutation
// creates exactly one record; nothing but the status field changes afterwards.
type TransactionRecord struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID   uint              `gorm:"not null;index" json:"account_id"`
	Amount      decimal.Decimal   `gorm:"type:decimal(20,8);not null" json:"amount"` // signed: credits positive, debits negative
	Type        TransactionType   `gorm:"size:50;not null;index" json:"type"`
	Status      TransactionStatus `gorm:"size:50;not null;default:COMPLETED" json:"status"`
	Description string            `gorm:"type:text" json:"description"`
	ReferenceID *uuid.UUID        `gorm:"type:uuid;index" json:"reference_id,omitempty"` // related withdrawal request, if any
	CreatedAt   time.Time         `gorm:"index" json:"created_at"`
}

func (TransactionRecord) TableName() string {
	return "transaction_records"
}

// TransactionMeta describes the ledger entry an adjustment should append.
type TransactionMeta struct {
	Type        TransactionType
	Status      TransactionStatus
	Description string
	ReferenceID *uuid.UUID
}
