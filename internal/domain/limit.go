package domain

import "github.com/shopspring/decimal"

// TransferLimit is the per-privilege limit configuration. Read-only
// reference data seeded by migration.
type TransferLimit struct {
	Privilege          Privilege
	MaxPerTransaction  decimal.Decimal
	MaxDailyCumulative decimal.Decimal
	MaxDailyCount      int
}

// DailyUsage is an account's consumed limit headroom for one calendar day
// in the reference timezone, aggregated over debit-side log entries.
type DailyUsage struct {
	Total decimal.Decimal
	Count int
}
