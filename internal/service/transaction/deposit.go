package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebankhq/corebank/internal/domain"
	"github.com/corebankhq/corebank/internal/logging"
)

type DepositRequest struct {
	UserID        uuid.UUID
	AccountNumber string
	Amount        decimal.Decimal
}

func (s *Service) Deposit(ctx context.Context, req DepositRequest) (*domain.TransactionLog, error) {
	log := logging.FromContext(ctx)

	if err := s.validateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}

	acct, err := s.ownedAccount(ctx, req.UserID, req.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}
	if err := verifyAccountActive(acct, "deposit"); err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}

	entry, err := s.applyCredit(ctx, acct.ID, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}

	log.Info("deposit completed",
		"account", req.AccountNumber,
		"amount", req.Amount,
		"balance_after", entry.BalanceAfter,
	)
	return entry, nil
}

type WithdrawRequest struct {
	UserID        uuid.UUID
	AccountNumber string
	Amount        decimal.Decimal
	PIN           string
}

// Withdraw is a debit, so it passes the same balance and daily-limit checks
// as a transfer.
func (s *Service) Withdraw(ctx context.Context, req WithdrawRequest) (*domain.TransactionLog, error) {
	log := logging.FromContext(ctx)

	if err := s.validateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	acct, err := s.ownedAccount(ctx, req.UserID, req.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	if err := s.validatePIN(req.PIN, acct.PINHash); err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}
	if err := verifyAccountActive(acct, "withdrawal"); err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	entry, err := s.applyDebit(ctx, acct.ID, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	log.Info("withdrawal completed",
		"account", req.AccountNumber,
		"amount", req.Amount,
		"balance_after", entry.BalanceAfter,
	)
	return entry, nil
}

func (s *Service) applyCredit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*domain.TransactionLog, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("applyCredit: begin tx: %w", err)
	}
	defer tx.Rollback()

	acct, err := s.accounts.GetForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, fmt.Errorf("applyCredit: %w", err)
	}
	if err := verifyAccountActive(acct, "deposit"); err != nil {
		return nil, fmt.Errorf("applyCredit: %w", err)
	}

	entry := &domain.TransactionLog{
		ID:           uuid.New(),
		AccountID:    acct.ID,
		Type:         domain.TransactionTypeDeposit,
		Amount:       amount,
		BalanceAfter: acct.Balance.Add(amount),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.logs.Create(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("applyCredit: log: %w", err)
	}

	if err := s.accounts.UpdateBalance(ctx, tx, acct.ID, entry.BalanceAfter, acct.Version+1); err != nil {
		return nil, fmt.Errorf("applyCredit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("applyCredit: commit: %w", err)
	}
	return entry, nil
}

func (s *Service) applyDebit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*domain.TransactionLog, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("applyDebit: begin tx: %w", err)
	}
	defer tx.Rollback()

	acct, err := s.accounts.GetForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, fmt.Errorf("applyDebit: %w", err)
	}
	if err := verifyAccountActive(acct, "withdrawal"); err != nil {
		return nil, fmt.Errorf("applyDebit: %w", err)
	}

	if err := validateBalance(acct, amount); err != nil {
		return nil, fmt.Errorf("applyDebit: %w", err)
	}
	if err := s.checkDailyLimits(ctx, tx, acct, amount); err != nil {
		return nil, fmt.Errorf("applyDebit: %w", err)
	}

	entry := &domain.TransactionLog{
		ID:           uuid.New(),
		AccountID:    acct.ID,
		Type:         domain.TransactionTypeWithdraw,
		Amount:       amount,
		BalanceAfter: acct.Balance.Sub(amount),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.logs.Create(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("applyDebit: log: %w", err)
	}

	if err := s.accounts.UpdateBalance(ctx, tx, acct.ID, entry.BalanceAfter, acct.Version+1); err != nil {
		return nil, fmt.Errorf("applyDebit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("applyDebit: commit: %w", err)
	}
	return entry, nil
}
