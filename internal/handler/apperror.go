package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}

	// Undecodable payloads are 422; payloads that decode but fail a
	// business rule or field check are 400.
	ErrMalformedPayload = &AppError{http.StatusUnprocessableEntity, "MALFORMED_PAYLOAD", "Request body could not be parsed"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request"}

	ErrResourceNotFound = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrAccountNotFound  = &AppError{http.StatusNotFound, "ACCOUNT_NOT_FOUND", "Account not found"}

	ErrInvalidAmount         = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount is malformed or out of range"}
	ErrInvalidPIN            = &AppError{http.StatusBadRequest, "INVALID_PIN", "Transaction PIN is malformed or incorrect"}
	ErrSameAccountTransfer   = &AppError{http.StatusBadRequest, "SAME_ACCOUNT_TRANSFER", "Source and destination accounts must differ"}
	ErrInvalidTransaction    = &AppError{http.StatusBadRequest, "INVALID_TRANSACTION", "Transaction not permitted for this account or mode"}
	ErrInsufficientFunds     = &AppError{http.StatusBadRequest, "INSUFFICIENT_FUNDS", "Insufficient funds"}
	ErrTransferLimitExceeded = &AppError{http.StatusBadRequest, "TRANSFER_LIMIT_EXCEEDED", "Transfer limit exceeded"}
	ErrDailyCountExceeded    = &AppError{http.StatusBadRequest, "DAILY_COUNT_EXCEEDED", "Daily transaction count exceeded"}

	ErrVersionConflict       = &AppError{http.StatusConflict, "VERSION_CONFLICT", "Resource was modified concurrently, please retry"}
	ErrDuplicateTransfer     = &AppError{http.StatusConflict, "DUPLICATE_TRANSFER", "Duplicate transfer"}
	ErrMissingIdempotencyKey = &AppError{http.StatusBadRequest, "MISSING_IDEMPOTENCY_KEY", "Idempotency-Key header is required"}
	ErrIdempotencyConflict   = &AppError{http.StatusConflict, "IDEMPOTENCY_CONFLICT", "Idempotency key already used with a different request"}

	ErrInternalError = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}
)
