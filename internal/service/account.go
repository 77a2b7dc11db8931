package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/corebankhq/corebank/internal/domain"
	"github.com/corebankhq/corebank/internal/logging"
)

type accountRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
}

type userChecker interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type AccountService struct {
	accounts  accountRepo
	users     userChecker
	pinLength int
}

func NewAccountService(accounts accountRepo, users userChecker, pinLength int) *AccountService {
	return &AccountService{accounts: accounts, users: users, pinLength: pinLength}
}

func (s *AccountService) CreateAccount(ctx context.Context, userID uuid.UUID, privilege domain.Privilege, pin string) (*domain.Account, error) {
	log := logging.FromContext(ctx)

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	if !privilege.IsValid() {
		return nil, fmt.Errorf("CreateAccount: privilege %q: %w", privilege, domain.ErrInvalidRequest)
	}
	if err := checkPINFormat(pin, s.pinLength); err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("CreateAccount: hash pin: %w", err)
	}

	acctNum, err := generateAccountNumber()
	if err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	account := &domain.Account{
		ID:            uuid.New(),
		UserID:        userID,
		AccountNumber: acctNum,
		Balance:       decimal.Zero,
		Privilege:     privilege,
		Status:        domain.AccountStatusActive,
		PINHash:       string(pinHash),
		Version:       1,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	log.Info("account created",
		"account_id", account.ID,
		"account_number", account.AccountNumber,
		"user_id", userID,
		"privilege", privilege,
	)

	return account, nil
}

func (s *AccountService) GetUserAccounts(ctx context.Context, userID uuid.UUID) ([]domain.Account, error) {
	accounts, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetUserAccounts: %w", err)
	}
	return accounts, nil
}

func (s *AccountService) GetAccountForUser(ctx context.Context, userID uuid.UUID, accountNumber string) (*domain.Account, error) {
	account, err := s.accounts.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("GetAccountForUser: %w", err)
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("GetAccountForUser: %w", domain.ErrAccountNotFound)
	}
	return account, nil
}

func checkPINFormat(pin string, length int) error {
	if len(pin) != length {
		return fmt.Errorf("checkPINFormat: must be %d digits: %w", length, domain.ErrInvalidPIN)
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return fmt.Errorf("checkPINFormat: must be numeric: %w", domain.ErrInvalidPIN)
		}
	}
	return nil
}

func generateAccountNumber() (string, error) {
	digits := make([]byte, 10)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generateAccountNumber: %w", err)
		}
		digits[i] = '0' + byte(n.Int64())
	}
	if digits[0] == '0' {
		digits[0] = '1'
	}
	return string(digits), nil
}
