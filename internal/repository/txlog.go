package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/corebankhq/corebank/internal/domain"
)

const txLogColumns = `id, account_id, transfer_id, type, amount,
	balance_after, created_at`

type TransactionLogRepository struct {
	db *sql.DB
}

func NewTransactionLogRepository(db *sql.DB) *TransactionLogRepository {
	return &TransactionLogRepository{db: db}
}

func (r *TransactionLogRepository) Create(ctx context.Context, tx *sql.Tx, entry *domain.TransactionLog) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transaction_logs (
			id, account_id, transfer_id, type, amount, balance_after, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.AccountID, entry.TransferID, entry.Type,
		entry.Amount, entry.BalanceAfter, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DailyUsage aggregates the debit-side entries for an account inside the
// half-open window [from, to).
func (r *TransactionLogRepository) DailyUsage(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*domain.DailyUsage, error) {
	return dailyUsage(ctx, r.db, accountID, from, to)
}

// DailyUsageTx is DailyUsage on an open transaction. Limit checks must use
// this form on the transaction that holds the account row lock, so the
// aggregate cannot race a concurrent debit.
func (r *TransactionLogRepository) DailyUsageTx(ctx context.Context, tx *sql.Tx, accountID uuid.UUID, from, to time.Time) (*domain.DailyUsage, error) {
	return dailyUsage(ctx, tx, accountID, from, to)
}

func dailyUsage(ctx context.Context, q rowQuerier, accountID uuid.UUID, from, to time.Time) (*domain.DailyUsage, error) {
	var u domain.DailyUsage
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM transaction_logs
		WHERE account_id = $1
		AND type IN ('withdraw', 'transfer')
		AND created_at >= $2 AND created_at < $3`,
		accountID, from, to,
	).Scan(&u.Total, &u.Count)
	if err != nil {
		return nil, fmt.Errorf("dailyUsage: %w", err)
	}
	return &u, nil
}

func (r *TransactionLogRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.TransactionLog, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transaction_logs WHERE account_id = $1`, accountID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("GetByAccountID: count: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+txLogColumns+` FROM transaction_logs
		WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("GetByAccountID: %w", err)
	}
	defer rows.Close()

	var entries []domain.TransactionLog
	for rows.Next() {
		e, err := scanTransactionLog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("GetByAccountID: scan: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("GetByAccountID: rows: %w", err)
	}
	return entries, total, nil
}

func scanTransactionLog(s scanner) (*domain.TransactionLog, error) {
	var e domain.TransactionLog
	var transferID uuid.NullUUID
	err := s.Scan(
		&e.ID, &e.AccountID, &transferID, &e.Type,
		&e.Amount, &e.BalanceAfter, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if transferID.Valid {
		e.TransferID = &transferID.UUID
	}
	return &e, nil
}
