package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebankhq/corebank/internal/domain"
	"github.com/corebankhq/corebank/internal/logging"
)

type TransferRequest struct {
	UserID              uuid.UUID
	SourceAccountNumber string
	DestAccountNumber   string
	Amount              decimal.Decimal
	Mode                domain.TransferMode
	PIN                 string
}

// Transfer runs the full validation pipeline and, if every check passes,
// commits debit, credit, transfer record, and log entries as one atomic
// unit. Any validator failure short-circuits with a typed error and leaves
// no partial mutation.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) (*domain.FundTransfer, error) {
	log := logging.FromContext(ctx)

	if err := s.validateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("Transfer: %w", err)
	}

	source, err := s.ownedAccount(ctx, req.UserID, req.SourceAccountNumber)
	if err != nil {
		return nil, fmt.Errorf("Transfer: %w", err)
	}

	if err := s.validatePIN(req.PIN, source.PINHash); err != nil {
		return nil, fmt.Errorf("Transfer: %w", err)
	}

	dest, err := s.accounts.GetByNumber(ctx, req.DestAccountNumber)
	if err != nil {
		return nil, fmt.Errorf("Transfer: destination: %w", err)
	}

	if err := s.validateTransfer(source, dest, req.Mode); err != nil {
		return nil, fmt.Errorf("Transfer: %w", err)
	}

	t, err := s.executeTransfer(ctx, req, source.ID, dest.ID)
	if err != nil {
		return nil, fmt.Errorf("Transfer: %w", err)
	}

	log.Info("transfer completed",
		"transfer_id", t.ID,
		"source_account", req.SourceAccountNumber,
		"dest_account", req.DestAccountNumber,
		"amount", req.Amount,
		"mode", req.Mode,
	)

	return t, nil
}

// executeTransfer re-checks balance and limits under row locks and commits
// the mutation. Accounts are locked in deterministic order so two opposing
// transfers cannot deadlock.
func (s *Service) executeTransfer(ctx context.Context, req TransferRequest, sourceID, destID uuid.UUID) (*domain.FundTransfer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("executeTransfer: begin tx: %w", err)
	}
	defer tx.Rollback()

	locked, err := lockAccountsInOrder(ctx, tx, s.accounts, sourceID, destID)
	if err != nil {
		return nil, fmt.Errorf("executeTransfer: %w", err)
	}
	source, dest := locked[sourceID], locked[destID]

	// Statuses may have changed between the unlocked read and the lock.
	if err := s.validateTransfer(source, dest, req.Mode); err != nil {
		return nil, fmt.Errorf("executeTransfer: %w", err)
	}

	if err := validateBalance(source, req.Amount); err != nil {
		return nil, fmt.Errorf("executeTransfer: %w", err)
	}

	if err := s.checkDailyLimits(ctx, tx, source, req.Amount); err != nil {
		return nil, fmt.Errorf("executeTransfer: %w", err)
	}

	now := time.Now().UTC()
	t := &domain.FundTransfer{
		ID:              uuid.New(),
		SourceAccountID: sourceID,
		DestAccountID:   destID,
		Amount:          req.Amount,
		Mode:            req.Mode,
		Status:          domain.TransferStatusCompleted,
		CreatedAt:       now,
		CompletedAt:     &now,
	}
	if err := s.transfers.Create(ctx, tx, t); err != nil {
		return nil, fmt.Errorf("executeTransfer: create transfer: %w", err)
	}

	if err := s.writeTransferLogs(ctx, tx, t, source, dest); err != nil {
		return nil, fmt.Errorf("executeTransfer: %w", err)
	}

	if err := s.accounts.UpdateBalance(ctx, tx, sourceID, source.Balance.Sub(req.Amount), source.Version+1); err != nil {
		return nil, fmt.Errorf("executeTransfer: update source: %w", err)
	}
	if err := s.accounts.UpdateBalance(ctx, tx, destID, dest.Balance.Add(req.Amount), dest.Version+1); err != nil {
		return nil, fmt.Errorf("executeTransfer: update destination: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("executeTransfer: commit: %w", err)
	}

	return t, nil
}

// checkDailyLimits snapshots today's usage on the open transaction, after
// the source row lock is held. Taking the snapshot before the lock would
// let two concurrent transfers each see headroom that jointly does not
// exist.
func (s *Service) checkDailyLimits(ctx context.Context, tx *sql.Tx, source *domain.Account, amount decimal.Decimal) error {
	limit, err := s.limits.GetByPrivilege(ctx, source.Privilege)
	if err != nil {
		return fmt.Errorf("checkDailyLimits: limits for %s: %w", source.Privilege, err)
	}

	from, to := s.dayWindow(time.Now())
	usage, err := s.logs.DailyUsageTx(ctx, tx, source.ID, from, to)
	if err != nil {
		return fmt.Errorf("checkDailyLimits: %w", err)
	}

	if err := validateLimits(limit, usage, amount); err != nil {
		return fmt.Errorf("checkDailyLimits: %w", err)
	}
	return nil
}

// writeTransferLogs appends the debit entry for the source and the credit
// entry for the destination. The credit side is recorded as a deposit so
// incoming transfers never consume the recipient's daily debit limits.
func (s *Service) writeTransferLogs(ctx context.Context, tx *sql.Tx, t *domain.FundTransfer, source, dest *domain.Account) error {
	debit := &domain.TransactionLog{
		ID:           uuid.New(),
		AccountID:    source.ID,
		TransferID:   &t.ID,
		Type:         domain.TransactionTypeTransfer,
		Amount:       t.Amount,
		BalanceAfter: source.Balance.Sub(t.Amount),
		CreatedAt:    t.CreatedAt,
	}
	if err := s.logs.Create(ctx, tx, debit); err != nil {
		return fmt.Errorf("writeTransferLogs: debit: %w", err)
	}

	credit := &domain.TransactionLog{
		ID:           uuid.New(),
		AccountID:    dest.ID,
		TransferID:   &t.ID,
		Type:         domain.TransactionTypeDeposit,
		Amount:       t.Amount,
		BalanceAfter: dest.Balance.Add(t.Amount),
		CreatedAt:    t.CreatedAt,
	}
	if err := s.logs.Create(ctx, tx, credit); err != nil {
		return fmt.Errorf("writeTransferLogs: credit: %w", err)
	}

	return nil
}

func lockAccountsInOrder(ctx context.Context, tx *sql.Tx, accounts accountRepo, ids ...uuid.UUID) (map[uuid.UUID]*domain.Account, error) {
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})

	result := make(map[uuid.UUID]*domain.Account, len(ids))
	for _, id := range sorted {
		acct, err := accounts.GetForUpdate(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("lockAccountsInOrder: %w", err)
		}
		result[id] = acct
	}
	return result, nil
}
