package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/dto"
	"github.com/avialab/flightledger/internal/service/journalservice"
	"github.com/avialab/flightledger/internal/service/ledgerservice"
)

func NewMock(t *testing.T) (*AccountHandler, *MockLedgerService, *MockJournalService) {
	ctrl := gomock.NewController(t)
	ledger := NewMockLedgerService(ctrl)
	journal := NewMockJournalService(ctrl)
	handler := New(ledger, journal)
	defer ctrl.Finish()
	return handler, ledger, journal
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newRequest(method, url, body, id string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, url, nil)
	} else {
		r = httptest.NewRequest(method, url, bytes.NewBufferString(body))
	}
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	return r
}

func completedCharge() *domain.Transaction {
	return &domain.Transaction{
		ID:            10,
		AccountID:     1,
		Number:        "TXN-20250601-000001",
		Type:          domain.TransactionCharge,
		Amount:        d("75"),
		BalanceBefore: d("100"),
		BalanceAfter:  d("25"),
		BalanceImpact: d("-75"),
		Status:        domain.TransactionCompleted,
		Description:   "flight lesson",
		CreatedAt:     time.Now(),
	}
}

func TestCreateAccountHandler(t *testing.T) {
	handler, ledger, _ := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful creation",
			body: `{"organization_id":1,"owner_id":7,"credit_limit":"100"}`,
			prepareMock: func() {
				ledger.EXPECT().
					CreateAccount(gomock.Any(), 1, 7, d("100")).
					Return(&domain.Account{
						ID:            5,
						AccountNumber: "ACCT-1000000008",
						Balance:       decimal.Zero,
						CreditLimit:   d("100"),
						Status:        domain.AccountActive,
					}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Invalid request body",
			body:         `{"organization_id":invalid}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Invalid credit limit",
			body: `{"organization_id":1,"owner_id":7,"credit_limit":"-5"}`,
			prepareMock: func() {
				ledger.EXPECT().
					CreateAccount(gomock.Any(), 1, 7, d("-5")).
					Return(nil, ledgerservice.ErrInvalidAmount)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := newRequest(http.MethodPost, "/api/accounts", tt.body, "")
			w := httptest.NewRecorder()
			handler.CreateAccount(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var body dto.AccountResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, 5, body.ID)
				assert.Equal(t, "ACCT-1000000008", body.AccountNumber)
				assert.True(t, body.AvailableBalance.Equal(d("100")))
			}
		})
	}
}

func TestChargeHandler(t *testing.T) {
	handler, ledger, _ := NewMock(t)

	tests := []struct {
		name         string
		id           string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful charge",
			id:   "1",
			body: `{"amount":"75","description":"flight lesson"}`,
			prepareMock: func() {
				ledger.EXPECT().
					Charge(gomock.Any(), 1, d("75"), false, "flight lesson", "").
					Return(completedCharge(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Insufficient balance",
			id:   "1",
			body: `{"amount":"150"}`,
			prepareMock: func() {
				ledger.EXPECT().
					Charge(gomock.Any(), 1, d("150"), false, "", "").
					Return(nil, ledgerservice.ErrInsufficientBalance)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "Suspended account",
			id:   "1",
			body: `{"amount":"75"}`,
			prepareMock: func() {
				ledger.EXPECT().
					Charge(gomock.Any(), 1, d("75"), false, "", "").
					Return(nil, ledgerservice.ErrAccountSuspended)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Unknown account",
			id:   "99",
			body: `{"amount":"75"}`,
			prepareMock: func() {
				ledger.EXPECT().
					Charge(gomock.Any(), 99, d("75"), false, "", "").
					Return(nil, ledgerservice.ErrAccountNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Invalid account id",
			id:           "abc",
			body:         `{"amount":"75"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid request body",
			id:           "1",
			body:         `{"amount":invalid}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := newRequest(http.MethodPost, "/api/accounts/"+tt.id+"/charge", tt.body, tt.id)
			w := httptest.NewRecorder()
			handler.Charge(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.TransactionResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, "TXN-20250601-000001", body.Number)
				assert.True(t, body.BalanceImpact.Equal(d("-75")))
			}
		})
	}
}

func TestTransferHandler(t *testing.T) {
	handler, ledger, _ := NewMock(t)

	t.Run("Successful transfer returns both entries", func(t *testing.T) {
		out := completedCharge()
		out.Type = domain.TransactionTransfer
		in := completedCharge()
		in.ID = 11
		in.AccountID = 2
		in.Type = domain.TransactionTransfer
		in.BalanceImpact = d("75")

		ledger.EXPECT().
			Transfer(gomock.Any(), 1, 2, d("75"), "lesson settlement").
			Return(out, in, nil)

		r := newRequest(http.MethodPost, "/api/accounts/1/transfer", `{"to_account_id":2,"amount":"75","reference":"lesson settlement"}`, "1")
		w := httptest.NewRecorder()
		handler.Transfer(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body []dto.TransactionResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&body)
		assert.Len(t, body, 2)
		assert.True(t, body[0].BalanceImpact.Equal(d("-75")))
		assert.True(t, body[1].BalanceImpact.Equal(d("75")))
	})

	t.Run("Transfer to self", func(t *testing.T) {
		ledger.EXPECT().
			Transfer(gomock.Any(), 1, 1, d("75"), "").
			Return(nil, nil, ledgerservice.ErrSameAccount)

		r := newRequest(http.MethodPost, "/api/accounts/1/transfer", `{"to_account_id":1,"amount":"75"}`, "1")
		w := httptest.NewRecorder()
		handler.Transfer(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestHoldHandlers(t *testing.T) {
	handler, ledger, _ := NewMock(t)

	t.Run("Reserve succeeds", func(t *testing.T) {
		ledger.EXPECT().
			ReservePending(gomock.Any(), 1, d("30")).
			Return(nil)

		r := newRequest(http.MethodPost, "/api/accounts/1/holds", `{"amount":"30"}`, "1")
		w := httptest.NewRecorder()
		handler.Reserve(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Reserve beyond available balance", func(t *testing.T) {
		ledger.EXPECT().
			ReservePending(gomock.Any(), 1, d("500")).
			Return(ledgerservice.ErrInsufficientBalance)

		r := newRequest(http.MethodPost, "/api/accounts/1/holds", `{"amount":"500"}`, "1")
		w := httptest.NewRecorder()
		handler.Reserve(w, r)
		assert.Equal(t, http.StatusPaymentRequired, w.Code)
	})

	t.Run("Release succeeds", func(t *testing.T) {
		ledger.EXPECT().
			ReleasePending(gomock.Any(), 1, d("30")).
			Return(nil)

		r := newRequest(http.MethodPost, "/api/accounts/1/holds/release", `{"amount":"30"}`, "1")
		w := httptest.NewRecorder()
		handler.Release(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLifecycleHandlers(t *testing.T) {
	handler, ledger, _ := NewMock(t)

	t.Run("Suspend succeeds", func(t *testing.T) {
		ledger.EXPECT().SuspendAccount(gomock.Any(), 1).Return(nil)

		r := newRequest(http.MethodPost, "/api/accounts/1/suspend", "", "1")
		w := httptest.NewRecorder()
		handler.Suspend(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Reactivate succeeds", func(t *testing.T) {
		ledger.EXPECT().ReactivateAccount(gomock.Any(), 1).Return(nil)

		r := newRequest(http.MethodPost, "/api/accounts/1/reactivate", "", "1")
		w := httptest.NewRecorder()
		handler.Reactivate(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Close with outstanding balance", func(t *testing.T) {
		ledger.EXPECT().CloseAccount(gomock.Any(), 1).Return(ledgerservice.ErrOutstandingBalance)

		r := newRequest(http.MethodPost, "/api/accounts/1/close", "", "1")
		w := httptest.NewRecorder()
		handler.Close(w, r)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Close an already closed account", func(t *testing.T) {
		ledger.EXPECT().CloseAccount(gomock.Any(), 1).Return(ledgerservice.ErrAccountClosed)

		r := newRequest(http.MethodPost, "/api/accounts/1/close", "", "1")
		w := httptest.NewRecorder()
		handler.Close(w, r)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGetTransactionsHandler(t *testing.T) {
	handler, ledger, _ := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Returns account history",
			prepareMock: func() {
				ledger.EXPECT().
					ListTransactions(gomock.Any(), 1).
					Return([]domain.Transaction{*completedCharge()}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name: "No transactions",
			prepareMock: func() {
				ledger.EXPECT().
					ListTransactions(gomock.Any(), 1).
					Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				ledger.EXPECT().
					ListTransactions(gomock.Any(), 1).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := newRequest(http.MethodGet, "/api/accounts/1/transactions", "", "1")
			w := httptest.NewRecorder()
			handler.GetTransactions(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.TransactionResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}

func TestReverseTransactionHandler(t *testing.T) {
	handler, _, journal := NewMock(t)

	tests := []struct {
		name         string
		id           string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful reversal",
			id:   "10",
			body: `{"reason":"billing error"}`,
			prepareMock: func() {
				reversal := completedCharge()
				reversal.ID = 11
				reversal.Type = domain.TransactionReversal
				reversal.BalanceImpact = d("75")
				journal.EXPECT().
					Reverse(gomock.Any(), 10, "billing error").
					Return(reversal, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Unknown transaction",
			id:   "99",
			body: `{"reason":"billing error"}`,
			prepareMock: func() {
				journal.EXPECT().
					Reverse(gomock.Any(), 99, "billing error").
					Return(nil, journalservice.ErrTransactionNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Already reversed",
			id:   "10",
			body: `{"reason":"billing error"}`,
			prepareMock: func() {
				journal.EXPECT().
					Reverse(gomock.Any(), 10, "billing error").
					Return(nil, journalservice.ErrTransactionNotReversible)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Invalid transaction id",
			id:           "abc",
			body:         `{"reason":"billing error"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := newRequest(http.MethodPost, "/api/transactions/"+tt.id+"/reverse", tt.body, tt.id)
			w := httptest.NewRecorder()
			handler.ReverseTransaction(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
