package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
	TransactionTypeTransfer TransactionType = "transfer"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdraw, TransactionTypeTransfer:
		return true
	}
	return false
}

// IsDebit reports whether entries of this type count toward the daily
// cumulative and count limits. Deposits do not consume limit headroom.
func (t TransactionType) IsDebit() bool {
	return t == TransactionTypeWithdraw || t == TransactionTypeTransfer
}

// TransactionLog is an append-only audit entry. Entries are never updated
// or deleted; the daily spend for limit checks is reconstructed from them.
type TransactionLog struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	TransferID   *uuid.UUID
	Type         TransactionType
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	CreatedAt    time.Time
}
