package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/corebankhq/corebank/internal/domain"
)

type TransferLimitRepository struct {
	db *sql.DB
}

func NewTransferLimitRepository(db *sql.DB) *TransferLimitRepository {
	return &TransferLimitRepository{db: db}
}

func (r *TransferLimitRepository) GetByPrivilege(ctx context.Context, p domain.Privilege) (*domain.TransferLimit, error) {
	var l domain.TransferLimit
	err := r.db.QueryRowContext(ctx,
		`SELECT privilege, max_per_transaction, max_daily_cumulative, max_daily_count
		FROM transfer_limits WHERE privilege = $1`, p,
	).Scan(&l.Privilege, &l.MaxPerTransaction, &l.MaxDailyCumulative, &l.MaxDailyCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByPrivilege: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByPrivilege: %w", err)
	}
	return &l, nil
}
