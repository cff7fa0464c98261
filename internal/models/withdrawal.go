package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "PENDING"
	WithdrawalStatusApproved  WithdrawalStatus = "APPROVED"
	WithdrawalStatusRejected  WithdrawalStatus = "REJECTED"
	WithdrawalStatusCompleted WithdrawalStatus = "COMPLETED"
)

// WithdrawalRequest is a user-initiated payout. The amount is debited from the
// balance at request time; PENDING -> {APPROVED, REJECTED} -> COMPLETED is
// driven by the back-office endpoints, and a rejection credits the amount back.
type WithdrawalRequest struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID         uint             `gorm:"not null;index" json:"account_id"`
	Amount            decimal.Decimal  `gorm:"type:decimal(20,8);not null" json:"amount"`
	BankName          string           `gorm:"size:255" json:"bank_name"`
	AccountNumber     string           `gorm:"size:64" json:"account_number"`
	AccountHolderName string           `gorm:"size:255" json:"account_holder_name"`
	UpiID             string           `gorm:"size:255" json:"upi_id"`
	Status            WithdrawalStatus `gorm:"size:50;not null;default:PENDING;index" json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	ProcessedAt       *time.Time       `json:"processed_at"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}

// Destination names where a payout should land. Either a bank account triple
// or a UPI ID is required.
type Destination struct {
	BankName          string `json:"bank_name"`
	AccountNumber     string `json:"account_number"`
	AccountHolderName string `json:"account_holder_name"`
	UpiID             string `json:"upi_id"`
}

// Empty reports whether no usable destination was provided.
func (d Destination) Empty() bool {
	if d.UpiID != "" {
		return false
	}
	return d.BankName == "" || d.AccountNumber == "" || d.AccountHolderName == ""
}

// Label returns a short human-readable destination for ledger descriptions.
func (d Destination) Label() string {
	if d.UpiID != "" {
		return d.UpiID
	}
	return d.BankName
}
