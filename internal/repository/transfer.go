package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/corebankhq/corebank/internal/domain"
)

const transferColumns = `id, source_account_id, dest_account_id, amount,
	mode, status, failure_reason, created_at, completed_at`

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(ctx context.Context, tx *sql.Tx, t *domain.FundTransfer) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO fund_transfers (
			id, source_account_id, dest_account_id, amount,
			mode, status, failure_reason, created_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.SourceAccountID, t.DestAccountID, t.Amount,
		t.Mode, t.Status, t.FailureReason, t.CreatedAt, t.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *TransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FundTransfer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transferColumns+` FROM fund_transfers WHERE id = $1`, id,
	)
	t, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return t, nil
}

func scanTransfer(s scanner) (*domain.FundTransfer, error) {
	var t domain.FundTransfer
	err := s.Scan(
		&t.ID, &t.SourceAccountID, &t.DestAccountID, &t.Amount,
		&t.Mode, &t.Status, &t.FailureReason, &t.CreatedAt, &t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
