package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/corebankhq/corebank/internal/domain"
)

// TestPIN is the transaction PIN every seeded account is created with.
const TestPIN = "4321"

func SeedTestUser(t *testing.T, db *sql.DB, email, name string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Status:       domain.UserStatusActive,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, name, password_hash, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Status, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test user %s: %v", email, err)
	}
	return u
}

func SeedTestAccount(t *testing.T, db *sql.DB, userID uuid.UUID, number string, privilege domain.Privilege, balance string) *domain.Account {
	t.Helper()

	bal, err := decimal.NewFromString(balance)
	if err != nil {
		t.Fatalf("parse balance %q: %v", balance, err)
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(TestPIN), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}

	a := &domain.Account{
		ID:            uuid.New(),
		UserID:        userID,
		AccountNumber: number,
		Balance:       bal,
		Privilege:     privilege,
		Status:        domain.AccountStatusActive,
		PINHash:       string(pinHash),
		Version:       1,
		CreatedAt:     time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO accounts (id, user_id, account_number, balance, privilege, status, pin_hash, version, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.UserID, a.AccountNumber, a.Balance, a.Privilege, a.Status, a.PINHash, a.Version, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test account %s: %v", number, err)
	}
	return a
}

func SetAccountStatus(t *testing.T, db *sql.DB, accountID uuid.UUID, status domain.AccountStatus) {
	t.Helper()

	if _, err := db.Exec(`UPDATE accounts SET status = $1 WHERE id = $2`, status, accountID); err != nil {
		t.Fatalf("set account status %s: %v", accountID, err)
	}
}

func GetAccountBalance(t *testing.T, db *sql.DB, accountID uuid.UUID) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	err := db.QueryRow(`SELECT balance FROM accounts WHERE id = $1`, accountID).Scan(&balance)
	if err != nil {
		t.Fatalf("get account balance %s: %v", accountID, err)
	}
	return balance
}

func CountLogEntries(t *testing.T, db *sql.DB, accountID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM transaction_logs WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		t.Fatalf("count log entries for account %s: %v", accountID, err)
	}
	return count
}

func CountTransfers(t *testing.T, db *sql.DB, sourceID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM fund_transfers WHERE source_account_id = $1`, sourceID).Scan(&count)
	if err != nil {
		t.Fatalf("count transfers for account %s: %v", sourceID, err)
	}
	return count
}

// SetTransferLimits overwrites the limit row for a privilege so tests can
// pin exact boundaries.
func SetTransferLimits(t *testing.T, db *sql.DB, privilege domain.Privilege, perTx, daily string, count int) {
	t.Helper()

	_, err := db.Exec(
		`UPDATE transfer_limits
		 SET max_per_transaction = $1, max_daily_cumulative = $2, max_daily_count = $3
		 WHERE privilege = $4`,
		perTx, daily, count, privilege,
	)
	if err != nil {
		t.Fatalf("set transfer limits for %s: %v", privilege, err)
	}
}
