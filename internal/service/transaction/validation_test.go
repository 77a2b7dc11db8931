package transaction

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebankhq/corebank/internal/domain"
)

// countingVerifier records whether the hash comparison primitive was ever
// reached. Format checks must reject malformed PINs before it runs.
type countingVerifier struct {
	calls int
	err   error
}

func (v *countingVerifier) Verify(hash, pin string) error {
	v.calls++
	return v.err
}

func newTestService(pins PINVerifier) *Service {
	return &Service{
		pins:        pins,
		pinLength:   4,
		maxTxAmount: decimal.RequireFromString("1000000.00"),
		limitTZ:     time.UTC,
	}
}

func activeAccount(userID uuid.UUID, privilege domain.Privilege) *domain.Account {
	return &domain.Account{
		ID:            uuid.New(),
		UserID:        userID,
		AccountNumber: "9" + uuid.NewString()[:9],
		Balance:       decimal.RequireFromString("10000.00"),
		Privilege:     privilege,
		Status:        domain.AccountStatusActive,
	}
}

func TestValidateAmount(t *testing.T) {
	svc := newTestService(&countingVerifier{})

	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{name: "positive integer", amount: "100"},
		{name: "two fractional digits", amount: "100.25"},
		{name: "smallest unit", amount: "0.01"},
		{name: "at system ceiling", amount: "1000000.00"},
		{name: "zero", amount: "0", wantErr: domain.ErrInvalidAmount},
		{name: "negative", amount: "-50", wantErr: domain.ErrInvalidAmount},
		{name: "three fractional digits", amount: "10.001", wantErr: domain.ErrInvalidAmount},
		{name: "above system ceiling", amount: "1000000.01", wantErr: domain.ErrInvalidAmount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.validateAmount(decimal.RequireFromString(tc.amount))

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		name      string
		pin       string
		verifier  *countingVerifier
		wantErr   error
		wantCalls int
	}{
		{name: "correct pin", pin: "4321", verifier: &countingVerifier{}, wantCalls: 1},
		{name: "wrong pin", pin: "9999", verifier: &countingVerifier{err: domain.ErrInvalidPIN}, wantErr: domain.ErrInvalidPIN, wantCalls: 1},
		{name: "too short", pin: "432", verifier: &countingVerifier{}, wantErr: domain.ErrInvalidPIN, wantCalls: 0},
		{name: "too long", pin: "43210", verifier: &countingVerifier{}, wantErr: domain.ErrInvalidPIN, wantCalls: 0},
		{name: "empty", pin: "", verifier: &countingVerifier{}, wantErr: domain.ErrInvalidPIN, wantCalls: 0},
		{name: "non-numeric", pin: "43a1", verifier: &countingVerifier{}, wantErr: domain.ErrInvalidPIN, wantCalls: 0},
		{name: "whitespace", pin: "43 1", verifier: &countingVerifier{}, wantErr: domain.ErrInvalidPIN, wantCalls: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(tc.verifier)

			err := svc.validatePIN(tc.pin, "$2a$10$fakehash")

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantCalls, tc.verifier.calls,
				"hash comparison must not run on malformed input")
		})
	}
}

func TestValidateTransfer(t *testing.T) {
	svc := newTestService(&countingVerifier{})
	userA := uuid.New()
	userB := uuid.New()

	withStatus := func(a *domain.Account, s domain.AccountStatus) *domain.Account {
		a.Status = s
		return a
	}

	tests := []struct {
		name    string
		source  *domain.Account
		dest    *domain.Account
		mode    domain.TransferMode
		wantErr error
	}{
		{
			name:   "valid transfer",
			source: activeAccount(userA, domain.PrivilegeGold),
			dest:   activeAccount(userB, domain.PrivilegeSilver),
			mode:   domain.TransferModeNEFT,
		},
		{
			name: "same account",
			source: activeAccount(userA, domain.PrivilegeGold),
			mode: domain.TransferModeIMPS,
			// dest filled in below with the same pointer
			wantErr: domain.ErrSameAccountTransfer,
		},
		{
			name:    "unknown mode",
			source:  activeAccount(userA, domain.PrivilegeGold),
			dest:    activeAccount(userB, domain.PrivilegeSilver),
			mode:    domain.TransferMode("WIRE"),
			wantErr: domain.ErrInvalidTransaction,
		},
		{
			name:    "source inactive",
			source:  withStatus(activeAccount(userA, domain.PrivilegeGold), domain.AccountStatusInactive),
			dest:    activeAccount(userB, domain.PrivilegeSilver),
			mode:    domain.TransferModeNEFT,
			wantErr: domain.ErrInvalidTransaction,
		},
		{
			name:    "source closed",
			source:  withStatus(activeAccount(userA, domain.PrivilegeGold), domain.AccountStatusClosed),
			dest:    activeAccount(userB, domain.PrivilegeSilver),
			mode:    domain.TransferModeNEFT,
			wantErr: domain.ErrInvalidTransaction,
		},
		{
			name:    "destination inactive",
			source:  activeAccount(userA, domain.PrivilegeGold),
			dest:    withStatus(activeAccount(userB, domain.PrivilegeSilver), domain.AccountStatusInactive),
			mode:    domain.TransferModeRTGS,
			wantErr: domain.ErrInvalidTransaction,
		},
		{
			name:    "destination closed",
			source:  activeAccount(userA, domain.PrivilegeGold),
			dest:    withStatus(activeAccount(userB, domain.PrivilegeSilver), domain.AccountStatusClosed),
			mode:    domain.TransferModeUPI,
			wantErr: domain.ErrInvalidTransaction,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dest := tc.dest
			if dest == nil {
				dest = tc.source
			}

			err := svc.validateTransfer(tc.source, dest, tc.mode)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateTransfer_SameAccountBeforeMode(t *testing.T) {
	// A same-account request with a garbage mode must report the
	// same-account error, not the mode error.
	svc := newTestService(&countingVerifier{})
	acct := activeAccount(uuid.New(), domain.PrivilegePremium)

	err := svc.validateTransfer(acct, acct, domain.TransferMode("WIRE"))
	require.ErrorIs(t, err, domain.ErrSameAccountTransfer)
}

func TestValidateBalance(t *testing.T) {
	acct := activeAccount(uuid.New(), domain.PrivilegeGold)
	acct.Balance = decimal.RequireFromString("500.00")

	require.NoError(t, validateBalance(acct, decimal.RequireFromString("500.00")))
	require.NoError(t, validateBalance(acct, decimal.RequireFromString("499.99")))
	require.ErrorIs(t, validateBalance(acct, decimal.RequireFromString("500.01")), domain.ErrInsufficientFunds)
}

func TestValidateLimits(t *testing.T) {
	limit := &domain.TransferLimit{
		Privilege:          domain.PrivilegeSilver,
		MaxPerTransaction:  decimal.RequireFromString("25000.00"),
		MaxDailyCumulative: decimal.RequireFromString("50000.00"),
		MaxDailyCount:      10,
	}

	tests := []struct {
		name    string
		usage   domain.DailyUsage
		amount  string
		wantErr error
	}{
		{
			name:   "well within limits",
			usage:  domain.DailyUsage{Total: decimal.Zero, Count: 0},
			amount: "1000.00",
		},
		{
			name:   "exactly at per-transaction cap",
			usage:  domain.DailyUsage{Total: decimal.Zero, Count: 0},
			amount: "25000.00",
		},
		{
			name:    "over per-transaction cap",
			usage:   domain.DailyUsage{Total: decimal.Zero, Count: 0},
			amount:  "25000.01",
			wantErr: domain.ErrTransferLimitExceeded,
		},
		{
			name:   "lands exactly on daily cumulative cap",
			usage:  domain.DailyUsage{Total: decimal.RequireFromString("40000.00"), Count: 3},
			amount: "10000.00",
		},
		{
			name:    "one cent over daily cumulative cap",
			usage:   domain.DailyUsage{Total: decimal.RequireFromString("40000.00"), Count: 3},
			amount:  "10000.01",
			wantErr: domain.ErrTransferLimitExceeded,
		},
		{
			name:   "last transaction of the day",
			usage:  domain.DailyUsage{Total: decimal.RequireFromString("9000.00"), Count: 9},
			amount: "100.00",
		},
		{
			name:    "daily count exhausted",
			usage:   domain.DailyUsage{Total: decimal.RequireFromString("9000.00"), Count: 10},
			amount:  "100.00",
			wantErr: domain.ErrDailyCountExceeded,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			usage := tc.usage
			err := validateLimits(limit, &usage, decimal.RequireFromString(tc.amount))

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDayWindow(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	svc := newTestService(&countingVerifier{})
	svc.limitTZ = ist

	// 20:00 UTC on Jan 14 is already 01:30 IST on Jan 15.
	now := time.Date(2026, time.January, 14, 20, 0, 0, 0, time.UTC)
	from, to := svc.dayWindow(now)

	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, ist), from)
	assert.Equal(t, time.Date(2026, time.January, 16, 0, 0, 0, 0, ist), to)
	assert.Equal(t, 24*time.Hour, to.Sub(from))
	assert.True(t, !now.Before(from) && now.Before(to), "now must fall inside its own window")
}
