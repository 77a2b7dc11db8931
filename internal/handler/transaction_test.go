package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebankhq/corebank/internal/auth"
	"github.com/corebankhq/corebank/internal/domain"
	"github.com/corebankhq/corebank/internal/service/transaction"
)

type mockTransactionService struct {
	transferErr  error
	lastTransfer transaction.TransferRequest
}

func (m *mockTransactionService) Transfer(_ context.Context, req transaction.TransferRequest) (*domain.FundTransfer, error) {
	m.lastTransfer = req
	if m.transferErr != nil {
		return nil, m.transferErr
	}
	now := time.Now().UTC()
	return &domain.FundTransfer{
		ID:              uuid.New(),
		SourceAccountID: uuid.New(),
		DestAccountID:   uuid.New(),
		Amount:          req.Amount,
		Mode:            req.Mode,
		Status:          domain.TransferStatusCompleted,
		CreatedAt:       now,
		CompletedAt:     &now,
	}, nil
}

func (m *mockTransactionService) Deposit(_ context.Context, req transaction.DepositRequest) (*domain.TransactionLog, error) {
	return &domain.TransactionLog{
		ID:           uuid.New(),
		Type:         domain.TransactionTypeDeposit,
		Amount:       req.Amount,
		BalanceAfter: req.Amount,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (m *mockTransactionService) Withdraw(_ context.Context, req transaction.WithdrawRequest) (*domain.TransactionLog, error) {
	return &domain.TransactionLog{
		ID:           uuid.New(),
		Type:         domain.TransactionTypeWithdraw,
		Amount:       req.Amount,
		BalanceAfter: decimal.Zero,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (m *mockTransactionService) GetTransfer(_ context.Context, _ uuid.UUID, _ uuid.UUID) (*domain.FundTransfer, error) {
	return nil, domain.ErrNotFound
}

func (m *mockTransactionService) GetLimits(_ context.Context, _ uuid.UUID, _ string) (*transaction.LimitStatus, error) {
	return &transaction.LimitStatus{}, nil
}

func (m *mockTransactionService) GetLogs(_ context.Context, _ uuid.UUID, _ string, _, _ int) ([]domain.TransactionLog, int, error) {
	return nil, 0, nil
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(auth.ContextWithUserID(req.Context(), uuid.New()))
}

func TestCreateTransfer(t *testing.T) {
	validBody := `{"source_account":"1000000001","dest_account":"1000000002","amount":"250.00","mode":"NEFT","pin":"4321"}`

	tests := []struct {
		name       string
		body       string
		authed     bool
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "valid transfer",
			body:       validBody,
			authed:     true,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "no auth context",
			body:       validBody,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "MISSING_TOKEN",
		},
		{
			name:       "invalid JSON",
			body:       "not-json",
			authed:     true,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "MALFORMED_PAYLOAD",
		},
		{
			name:       "missing fields",
			body:       `{"amount":"100.00"}`,
			authed:     true,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "non-decimal amount",
			body:       `{"source_account":"1000000001","dest_account":"1000000002","amount":"ten","mode":"NEFT","pin":"4321"}`,
			authed:     true,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "unknown mode",
			body:       `{"source_account":"1000000001","dest_account":"1000000002","amount":"100.00","mode":"WIRE","pin":"4321"}`,
			authed:     true,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "insufficient funds",
			body:       validBody,
			authed:     true,
			svcErr:     domain.ErrInsufficientFunds,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INSUFFICIENT_FUNDS",
		},
		{
			name:       "wrong pin",
			body:       validBody,
			authed:     true,
			svcErr:     domain.ErrInvalidPIN,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_PIN",
		},
		{
			name:       "limit exceeded",
			body:       validBody,
			authed:     true,
			svcErr:     domain.ErrTransferLimitExceeded,
			wantStatus: http.StatusBadRequest,
			wantCode:   "TRANSFER_LIMIT_EXCEEDED",
		},
		{
			name:       "unknown destination",
			body:       validBody,
			authed:     true,
			svcErr:     domain.ErrAccountNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "ACCOUNT_NOT_FOUND",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockTransactionService{transferErr: tc.svcErr}
			h := NewTransactionHandler(svc)

			var req *http.Request
			if tc.authed {
				req = authedRequest(http.MethodPost, "/api/v1/transfers", tc.body)
			} else {
				req = httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader(tc.body))
			}
			rr := httptest.NewRecorder()

			h.CreateTransfer(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)

			var resp APIResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tc.wantCode == "" {
				assert.True(t, resp.Success)
				assert.NotEmpty(t, rr.Header().Get("Location"))
			} else {
				assert.False(t, resp.Success)
				require.NotNil(t, resp.Error)
				assert.Equal(t, tc.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestCreateTransfer_PassesDecimalAmountThrough(t *testing.T) {
	svc := &mockTransactionService{}
	h := NewTransactionHandler(svc)

	body := `{"source_account":"1000000001","dest_account":"1000000002","amount":"0.01","mode":"UPI","pin":"4321"}`
	rr := httptest.NewRecorder()
	h.CreateTransfer(rr, authedRequest(http.MethodPost, "/api/v1/transfers", body))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, svc.lastTransfer.Amount.Equal(decimal.RequireFromString("0.01")))
	assert.Equal(t, domain.TransferModeUPI, svc.lastTransfer.Mode)
}

func TestCreateWithdrawal_RequiresPIN(t *testing.T) {
	svc := &mockTransactionService{}
	h := NewTransactionHandler(svc)

	body := `{"account":"1000000001","amount":"100.00"}`
	rr := httptest.NewRecorder()
	h.CreateWithdrawal(rr, authedRequest(http.MethodPost, "/api/v1/withdrawals", body))

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
}

func TestCreateDeposit_NoPINRequired(t *testing.T) {
	svc := &mockTransactionService{}
	h := NewTransactionHandler(svc)

	body := `{"account":"1000000001","amount":"100.00"}`
	rr := httptest.NewRecorder()
	h.CreateDeposit(rr, authedRequest(http.MethodPost, "/api/v1/deposits", body))

	assert.Equal(t, http.StatusCreated, rr.Code)
}
