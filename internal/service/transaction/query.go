package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebankhq/corebank/internal/domain"
)

// LimitStatus pairs the privilege-level limit configuration with the
// headroom already consumed today.
type LimitStatus struct {
	Limit      domain.TransferLimit
	UsedToday  decimal.Decimal
	CountToday int
}

func (s *Service) GetLimits(ctx context.Context, userID uuid.UUID, accountNumber string) (*LimitStatus, error) {
	acct, err := s.ownedAccount(ctx, userID, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("GetLimits: %w", err)
	}

	limit, err := s.limits.GetByPrivilege(ctx, acct.Privilege)
	if err != nil {
		return nil, fmt.Errorf("GetLimits: limits for %s: %w", acct.Privilege, err)
	}

	from, to := s.dayWindow(time.Now())
	usage, err := s.logs.DailyUsage(ctx, acct.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("GetLimits: %w", err)
	}

	return &LimitStatus{
		Limit:      *limit,
		UsedToday:  usage.Total,
		CountToday: usage.Count,
	}, nil
}

func (s *Service) GetLogs(ctx context.Context, userID uuid.UUID, accountNumber string, limit, offset int) ([]domain.TransactionLog, int, error) {
	acct, err := s.ownedAccount(ctx, userID, accountNumber)
	if err != nil {
		return nil, 0, fmt.Errorf("GetLogs: %w", err)
	}

	entries, total, err := s.logs.GetByAccountID(ctx, acct.ID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("GetLogs: %w", err)
	}
	return entries, total, nil
}

// GetTransfer returns a transfer only to a participant. Transfers the
// caller is not a party to read as not found.
func (s *Service) GetTransfer(ctx context.Context, userID, id uuid.UUID) (*domain.FundTransfer, error) {
	t, err := s.transfers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetTransfer: %w", err)
	}

	source, err := s.accounts.GetByID(ctx, t.SourceAccountID)
	if err != nil {
		return nil, fmt.Errorf("GetTransfer: source: %w", err)
	}
	if source.UserID == userID {
		return t, nil
	}

	dest, err := s.accounts.GetByID(ctx, t.DestAccountID)
	if err != nil {
		return nil, fmt.Errorf("GetTransfer: destination: %w", err)
	}
	if dest.UserID != userID {
		return nil, fmt.Errorf("GetTransfer: %w", domain.ErrNotFound)
	}
	return t, nil
}
