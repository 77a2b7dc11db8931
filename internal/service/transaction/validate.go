package transaction

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/corebankhq/corebank/internal/domain"
)

// validateAmount bounds-checks a monetary amount: positive, at most two
// fractional digits, and within the absolute system ceiling. Pure; never
// touches the store.
func (s *Service) validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("validateAmount: must be positive: %w", domain.ErrInvalidAmount)
	}
	if !domain.HasValidScale(amount) {
		return fmt.Errorf("validateAmount: more than %d fractional digits: %w", domain.MoneyScale, domain.ErrInvalidAmount)
	}
	if amount.GreaterThan(s.maxTxAmount) {
		return fmt.Errorf("validateAmount: exceeds system ceiling %s: %w", s.maxTxAmount, domain.ErrInvalidAmount)
	}
	return nil
}

// validatePIN rejects malformed PINs before the hash comparison is ever
// invoked, then delegates to the constant-time verifier.
func (s *Service) validatePIN(presented, storedHash string) error {
	if len(presented) != s.pinLength {
		return fmt.Errorf("validatePIN: wrong length: %w", domain.ErrInvalidPIN)
	}
	for _, c := range presented {
		if c < '0' || c > '9' {
			return fmt.Errorf("validatePIN: not numeric: %w", domain.ErrInvalidPIN)
		}
	}
	if err := s.pins.Verify(storedHash, presented); err != nil {
		return fmt.Errorf("validatePIN: %w", err)
	}
	return nil
}

// validateTransfer applies the static transfer rules: distinct accounts,
// recognized mode, both accounts active.
func (s *Service) validateTransfer(source, dest *domain.Account, mode domain.TransferMode) error {
	if source.ID == dest.ID {
		return fmt.Errorf("validateTransfer: %w", domain.ErrSameAccountTransfer)
	}
	if !mode.IsValid() {
		return fmt.Errorf("validateTransfer: unknown mode %q: %w", mode, domain.ErrInvalidTransaction)
	}
	if err := verifyAccountActive(source, "source"); err != nil {
		return fmt.Errorf("validateTransfer: %w", err)
	}
	if err := verifyAccountActive(dest, "destination"); err != nil {
		return fmt.Errorf("validateTransfer: %w", err)
	}
	return nil
}

func verifyAccountActive(acct *domain.Account, role string) error {
	if acct.Status != domain.AccountStatusActive {
		return fmt.Errorf("%s account %s is %s: %w", role, acct.AccountNumber, acct.Status, domain.ErrInvalidTransaction)
	}
	return nil
}

// validateBalance must be called on an account read under FOR UPDATE in the
// transaction that performs the debit; a stale read here is a correctness
// bug, not an acceptable race.
func validateBalance(acct *domain.Account, amount decimal.Decimal) error {
	if acct.Balance.LessThan(amount) {
		return fmt.Errorf("validateBalance: balance %s below %s: %w", acct.Balance, amount, domain.ErrInsufficientFunds)
	}
	return nil
}

// validateLimits enforces the per-transaction, daily cumulative, and daily
// count caps for the account's privilege level against a usage snapshot
// taken under the same row lock as the eventual log append.
func validateLimits(limit *domain.TransferLimit, usage *domain.DailyUsage, amount decimal.Decimal) error {
	if amount.GreaterThan(limit.MaxPerTransaction) {
		return fmt.Errorf("validateLimits: amount %s over per-transaction cap %s for %s: %w",
			amount, limit.MaxPerTransaction, limit.Privilege, domain.ErrTransferLimitExceeded)
	}
	if usage.Total.Add(amount).GreaterThan(limit.MaxDailyCumulative) {
		return fmt.Errorf("validateLimits: daily total %s plus %s over cap %s for %s: %w",
			usage.Total, amount, limit.MaxDailyCumulative, limit.Privilege, domain.ErrTransferLimitExceeded)
	}
	if usage.Count+1 > limit.MaxDailyCount {
		return fmt.Errorf("validateLimits: %d transactions today, cap %d for %s: %w",
			usage.Count, limit.MaxDailyCount, limit.Privilege, domain.ErrDailyCountExceeded)
	}
	return nil
}
