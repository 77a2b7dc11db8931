package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebankhq/corebank/internal/auth"
	"github.com/corebankhq/corebank/internal/domain"
	"github.com/corebankhq/corebank/internal/logging"
	"github.com/corebankhq/corebank/internal/service/transaction"
)

type transactionService interface {
	Transfer(ctx context.Context, req transaction.TransferRequest) (*domain.FundTransfer, error)
	Deposit(ctx context.Context, req transaction.DepositRequest) (*domain.TransactionLog, error)
	Withdraw(ctx context.Context, req transaction.WithdrawRequest) (*domain.TransactionLog, error)
	GetTransfer(ctx context.Context, userID, id uuid.UUID) (*domain.FundTransfer, error)
	GetLimits(ctx context.Context, userID uuid.UUID, accountNumber string) (*transaction.LimitStatus, error)
	GetLogs(ctx context.Context, userID uuid.UUID, accountNumber string, limit, offset int) ([]domain.TransactionLog, int, error)
}

type TransactionHandler struct {
	transactions transactionService
}

func NewTransactionHandler(transactions transactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type transferRequest struct {
	SourceAccount string `json:"source_account"`
	DestAccount   string `json:"dest_account"`
	Amount        string `json:"amount"`
	Mode          string `json:"mode"`
	PIN           string `json:"pin"`
}

func (r transferRequest) Validate() []FieldError {
	var errs []FieldError

	if r.SourceAccount == "" {
		errs = append(errs, FieldError{Field: "source_account", Message: "required"})
	}
	if r.DestAccount == "" {
		errs = append(errs, FieldError{Field: "dest_account", Message: "required"})
	}
	if r.Amount == "" {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	} else if _, err := decimal.NewFromString(r.Amount); err != nil {
		errs = append(errs, FieldError{Field: "amount", Message: "must be a decimal number"})
	}
	if r.Mode == "" {
		errs = append(errs, FieldError{Field: "mode", Message: "required"})
	} else if !domain.TransferMode(r.Mode).IsValid() {
		errs = append(errs, FieldError{Field: "mode", Message: "must be NEFT, RTGS, IMPS, UPI, or CHEQUE"})
	}
	if r.PIN == "" {
		errs = append(errs, FieldError{Field: "pin", Message: "required"})
	}

	return errs
}

type transferDTO struct {
	ID            uuid.UUID       `json:"id"`
	SourceAccount uuid.UUID       `json:"source_account_id"`
	DestAccount   uuid.UUID       `json:"dest_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Mode          string          `json:"mode"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

func toTransferDTO(t *domain.FundTransfer) transferDTO {
	return transferDTO{
		ID:            t.ID,
		SourceAccount: t.SourceAccountID,
		DestAccount:   t.DestAccountID,
		Amount:        t.Amount,
		Mode:          string(t.Mode),
		Status:        string(t.Status),
		CreatedAt:     t.CreatedAt,
		CompletedAt:   t.CompletedAt,
	}
}

type logDTO struct {
	ID           uuid.UUID       `json:"id"`
	AccountID    uuid.UUID       `json:"account_id"`
	TransferID   *uuid.UUID      `json:"transfer_id,omitempty"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toLogDTO(e *domain.TransactionLog) logDTO {
	return logDTO{
		ID:           e.ID,
		AccountID:    e.AccountID,
		TransferID:   e.TransferID,
		Type:         string(e.Type),
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		CreatedAt:    e.CreatedAt,
	}
}

func (h *TransactionHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrMalformedPayload, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	amount, _ := decimal.NewFromString(req.Amount)
	t, err := h.transactions.Transfer(r.Context(), transaction.TransferRequest{
		UserID:              userID,
		SourceAccountNumber: req.SourceAccount,
		DestAccountNumber:   req.DestAccount,
		Amount:              amount,
		Mode:                domain.TransferMode(req.Mode),
		PIN:                 req.PIN,
	})
	if err != nil {
		log.Warn("transfer failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/transfers/%s", t.ID))
	RespondSuccess(w, http.StatusCreated, toTransferDTO(t))
}

func (h *TransactionHandler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	t, err := h.transactions.GetTransfer(r.Context(), userID, id)
	if err != nil {
		logging.FromContext(r.Context()).Warn("transfer lookup failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toTransferDTO(t))
}

type depositRequest struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

func (r depositRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Account == "" {
		errs = append(errs, FieldError{Field: "account", Message: "required"})
	}
	if r.Amount == "" {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	} else if _, err := decimal.NewFromString(r.Amount); err != nil {
		errs = append(errs, FieldError{Field: "amount", Message: "must be a decimal number"})
	}
	return errs
}

func (h *TransactionHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrMalformedPayload, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	amount, _ := decimal.NewFromString(req.Amount)
	entry, err := h.transactions.Deposit(r.Context(), transaction.DepositRequest{
		UserID:        userID,
		AccountNumber: req.Account,
		Amount:        amount,
	})
	if err != nil {
		log.Warn("deposit failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toLogDTO(entry))
}

type withdrawRequest struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
	PIN     string `json:"pin"`
}

func (r withdrawRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Account == "" {
		errs = append(errs, FieldError{Field: "account", Message: "required"})
	}
	if r.Amount == "" {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	} else if _, err := decimal.NewFromString(r.Amount); err != nil {
		errs = append(errs, FieldError{Field: "amount", Message: "must be a decimal number"})
	}
	if r.PIN == "" {
		errs = append(errs, FieldError{Field: "pin", Message: "required"})
	}
	return errs
}

func (h *TransactionHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrMalformedPayload, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	amount, _ := decimal.NewFromString(req.Amount)
	entry, err := h.transactions.Withdraw(r.Context(), transaction.WithdrawRequest{
		UserID:        userID,
		AccountNumber: req.Account,
		Amount:        amount,
		PIN:           req.PIN,
	})
	if err != nil {
		log.Warn("withdrawal failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toLogDTO(entry))
}

type limitStatusDTO struct {
	Privilege          string          `json:"privilege"`
	MaxPerTransaction  decimal.Decimal `json:"max_per_transaction"`
	MaxDailyCumulative decimal.Decimal `json:"max_daily_cumulative"`
	MaxDailyCount      int             `json:"max_daily_count"`
	UsedToday          decimal.Decimal `json:"used_today"`
	CountToday         int             `json:"count_today"`
}

func (h *TransactionHandler) GetLimits(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	status, err := h.transactions.GetLimits(r.Context(), userID, r.PathValue("account"))
	if err != nil {
		logging.FromContext(r.Context()).Warn("limit lookup failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, limitStatusDTO{
		Privilege:          string(status.Limit.Privilege),
		MaxPerTransaction:  status.Limit.MaxPerTransaction,
		MaxDailyCumulative: status.Limit.MaxDailyCumulative,
		MaxDailyCount:      status.Limit.MaxDailyCount,
		UsedToday:          status.UsedToday,
		CountToday:         status.CountToday,
	})
}

func (h *TransactionHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	entries, total, err := h.transactions.GetLogs(r.Context(), userID, r.PathValue("account"), limit, offset)
	if err != nil {
		logging.FromContext(r.Context()).Warn("log lookup failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]logDTO, len(entries))
	for i := range entries {
		dtos[i] = toLogDTO(&entries[i])
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"entries": dtos,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
