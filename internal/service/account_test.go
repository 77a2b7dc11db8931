package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/corebankhq/corebank/internal/domain"
)

type mockAccountRepo struct {
	created  *domain.Account
	byNumber *domain.Account
	byUser   []domain.Account
}

func (m *mockAccountRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Account, error) {
	return nil, domain.ErrAccountNotFound
}

func (m *mockAccountRepo) GetByNumber(_ context.Context, _ string) (*domain.Account, error) {
	if m.byNumber == nil {
		return nil, domain.ErrAccountNotFound
	}
	return m.byNumber, nil
}

func (m *mockAccountRepo) GetByUserID(_ context.Context, _ uuid.UUID) ([]domain.Account, error) {
	return m.byUser, nil
}

func (m *mockAccountRepo) Create(_ context.Context, account *domain.Account) error {
	m.created = account
	return nil
}

type mockUserChecker struct {
	err error
}

func (m *mockUserChecker) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.User{ID: id}, nil
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("happy path", func(t *testing.T) {
		repo := &mockAccountRepo{}
		svc := NewAccountService(repo, &mockUserChecker{}, 4)

		acct, err := svc.CreateAccount(ctx, userID, domain.PrivilegeGold, "4321")

		require.NoError(t, err)
		require.NotNil(t, repo.created)
		assert.Equal(t, userID, acct.UserID)
		assert.Equal(t, domain.PrivilegeGold, acct.Privilege)
		assert.Equal(t, domain.AccountStatusActive, acct.Status)
		assert.True(t, acct.Balance.IsZero())
		assert.Equal(t, int64(1), acct.Version)
		assert.Len(t, acct.AccountNumber, 10)
		assert.NotEqual(t, byte('0'), acct.AccountNumber[0])

		// The stored hash must verify against the original PIN and only it.
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(acct.PINHash), []byte("4321")))
		require.Error(t, bcrypt.CompareHashAndPassword([]byte(acct.PINHash), []byte("1234")))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewAccountService(&mockAccountRepo{}, &mockUserChecker{err: domain.ErrNotFound}, 4)

		_, err := svc.CreateAccount(ctx, userID, domain.PrivilegeGold, "4321")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid privilege", func(t *testing.T) {
		svc := NewAccountService(&mockAccountRepo{}, &mockUserChecker{}, 4)

		_, err := svc.CreateAccount(ctx, userID, domain.Privilege("platinum"), "4321")
		require.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("malformed pin", func(t *testing.T) {
		svc := NewAccountService(&mockAccountRepo{}, &mockUserChecker{}, 4)

		for _, pin := range []string{"123", "12345", "43a1", ""} {
			_, err := svc.CreateAccount(ctx, userID, domain.PrivilegeSilver, pin)
			require.ErrorIs(t, err, domain.ErrInvalidPIN, "pin %q", pin)
		}
	})
}

func TestGetAccountForUser(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	repo := &mockAccountRepo{byNumber: &domain.Account{
		ID:            uuid.New(),
		UserID:        owner,
		AccountNumber: "1000000001",
	}}
	svc := NewAccountService(repo, &mockUserChecker{}, 4)

	acct, err := svc.GetAccountForUser(ctx, owner, "1000000001")
	require.NoError(t, err)
	assert.Equal(t, owner, acct.UserID)

	// A foreign account reads as not found, never as forbidden.
	_, err = svc.GetAccountForUser(ctx, uuid.New(), "1000000001")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGenerateAccountNumber(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		n, err := generateAccountNumber()
		require.NoError(t, err)
		require.Len(t, n, 10)
		assert.NotEqual(t, byte('0'), n[0])
		for _, c := range n {
			assert.True(t, c >= '0' && c <= '9')
		}
		seen[n] = true
	}
	assert.Greater(t, len(seen), 95, "numbers should be effectively unique")
}
