package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the fixed number of fractional digits carried by every
// monetary amount in the system. Amounts are decimal end to end; binary
// floating point is never used for money.
const MoneyScale = 2

// ParseMoney parses a decimal string into a monetary amount. Values with
// more than MoneyScale fractional digits are rejected rather than rounded.
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("ParseMoney: %q: %w", s, ErrInvalidAmount)
	}
	if !HasValidScale(d) {
		return decimal.Decimal{}, fmt.Errorf("ParseMoney: more than %d fractional digits: %w", MoneyScale, ErrInvalidAmount)
	}
	return d, nil
}

// HasValidScale reports whether d can be represented exactly with
// MoneyScale fractional digits.
func HasValidScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
