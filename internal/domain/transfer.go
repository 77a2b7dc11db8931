package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferMode is the settlement channel of a fund transfer.
type TransferMode string

const (
	TransferModeNEFT   TransferMode = "NEFT"
	TransferModeRTGS   TransferMode = "RTGS"
	TransferModeIMPS   TransferMode = "IMPS"
	TransferModeUPI    TransferMode = "UPI"
	TransferModeCheque TransferMode = "CHEQUE"
)

func (m TransferMode) IsValid() bool {
	switch m {
	case TransferModeNEFT, TransferModeRTGS, TransferModeIMPS, TransferModeUPI, TransferModeCheque:
		return true
	}
	return false
}

type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusFailed    TransferStatus = "failed"
)

// FundTransfer records an executed transfer. Rows are written only when a
// transfer commits; once completed or failed the record is immutable.
type FundTransfer struct {
	ID              uuid.UUID
	SourceAccountID uuid.UUID
	DestAccountID   uuid.UUID
	Amount          decimal.Decimal
	Mode            TransferMode
	Status          TransferStatus
	FailureReason   *string
	CreatedAt       time.Time
	CompletedAt     *time.Time
}
