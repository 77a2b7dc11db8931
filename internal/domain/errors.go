package domain

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidPIN            = errors.New("invalid transaction pin")
	ErrSameAccountTransfer   = errors.New("cannot transfer to the same account")
	ErrInvalidTransaction    = errors.New("transaction not permitted for account")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrTransferLimitExceeded = errors.New("transfer limit exceeded")
	ErrDailyCountExceeded    = errors.New("daily transaction count exceeded")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrVersionConflict       = errors.New("optimistic lock conflict")
	ErrDuplicateTransfer     = errors.New("duplicate transfer")
)
