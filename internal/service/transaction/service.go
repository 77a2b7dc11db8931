package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/corebankhq/corebank/internal/config"
	"github.com/corebankhq/corebank/internal/domain"
)

type accountRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, newBalance decimal.Decimal, newVersion int64) error
}

type transferRepo interface {
	Create(ctx context.Context, tx *sql.Tx, t *domain.FundTransfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FundTransfer, error)
}

type logRepo interface {
	Create(ctx context.Context, tx *sql.Tx, entry *domain.TransactionLog) error
	DailyUsage(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*domain.DailyUsage, error)
	DailyUsageTx(ctx context.Context, tx *sql.Tx, accountID uuid.UUID, from, to time.Time) (*domain.DailyUsage, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.TransactionLog, int, error)
}

type limitRepo interface {
	GetByPrivilege(ctx context.Context, p domain.Privilege) (*domain.TransferLimit, error)
}

// PINVerifier checks a presented transaction PIN against its stored one-way
// hash. Implementations must be constant time with respect to the hash and
// must never persist or log the plaintext.
type PINVerifier interface {
	Verify(hash, pin string) error
}

// BcryptVerifier is the production PINVerifier.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(hash, pin string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		return fmt.Errorf("Verify: %w", domain.ErrInvalidPIN)
	}
	return nil
}

type Service struct {
	accounts    accountRepo
	transfers   transferRepo
	logs        logRepo
	limits      limitRepo
	pins        PINVerifier
	db          *sql.DB
	pinLength   int
	maxTxAmount decimal.Decimal
	limitTZ     *time.Location
}

func NewService(
	accounts accountRepo,
	transfers transferRepo,
	logs logRepo,
	limits limitRepo,
	pins PINVerifier,
	db *sql.DB,
	cfg *config.Config,
) (*Service, error) {
	loc, err := time.LoadLocation(cfg.LimitTimezone)
	if err != nil {
		return nil, fmt.Errorf("NewService: limit timezone: %w", err)
	}

	ceiling, err := domain.ParseMoney(cfg.MaxTxAmount)
	if err != nil {
		return nil, fmt.Errorf("NewService: max tx amount: %w", err)
	}

	return &Service{
		accounts:    accounts,
		transfers:   transfers,
		logs:        logs,
		limits:      limits,
		pins:        pins,
		db:          db,
		pinLength:   cfg.PINLength,
		maxTxAmount: ceiling,
		limitTZ:     loc,
	}, nil
}

// dayWindow bounds the calendar day containing now in the reference
// timezone, as a half-open [start, end) interval.
func (s *Service) dayWindow(now time.Time) (time.Time, time.Time) {
	local := now.In(s.limitTZ)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.limitTZ)
	return start, start.AddDate(0, 0, 1)
}

// ownedAccount resolves an account number and checks it belongs to the
// caller. Foreign accounts are reported as not found rather than forbidden.
func (s *Service) ownedAccount(ctx context.Context, userID uuid.UUID, number string) (*domain.Account, error) {
	acct, err := s.accounts.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("ownedAccount: %w", err)
	}
	if acct.UserID != userID {
		return nil, fmt.Errorf("ownedAccount: %w", domain.ErrAccountNotFound)
	}
	return acct, nil
}
