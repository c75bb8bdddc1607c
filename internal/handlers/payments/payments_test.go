package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/dto"
	"github.com/avialab/flightledger/internal/gateway"
	"github.com/avialab/flightledger/internal/service/journalservice"
	"github.com/avialab/flightledger/internal/service/paymentservice"
)

func NewMock(t *testing.T) (*PaymentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newRequest(method, url, body, id string) *http.Request {
	r := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestChargeHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		id           string
		body         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.GatewayChargeResponseDTO
	}{
		{
			name: "Successful charge",
			id:   "1",
			body: `{"customer_ref":"cus_1","method_ref":"pm_1","amount":"300","currency":"USD","idempotency_key":"idem-1"}`,
			prepareMock: func() {
				service.EXPECT().
					ChargePaymentMethod(gomock.Any(), 1, "cus_1", "pm_1", d("300"), "USD", "idem-1").
					Return(&paymentservice.ChargeResult{
						GatewayTxnID: "gw_123",
						Transaction:  &domain.Transaction{Number: "TXN-20250601-000001"},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.GatewayChargeResponseDTO{
				GatewayTxnID:      "gw_123",
				TransactionNumber: "TXN-20250601-000001",
			},
		},
		{
			name: "Idempotent replay without a new entry",
			id:   "1",
			body: `{"customer_ref":"cus_1","method_ref":"pm_1","amount":"300","currency":"USD","idempotency_key":"idem-1"}`,
			prepareMock: func() {
				service.EXPECT().
					ChargePaymentMethod(gomock.Any(), 1, "cus_1", "pm_1", d("300"), "USD", "idem-1").
					Return(&paymentservice.ChargeResult{GatewayTxnID: "gw_123"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.GatewayChargeResponseDTO{GatewayTxnID: "gw_123"},
		},
		{
			name: "Card declined",
			id:   "1",
			body: `{"customer_ref":"cus_1","method_ref":"pm_1","amount":"300","currency":"USD"}`,
			prepareMock: func() {
				service.EXPECT().
					ChargePaymentMethod(gomock.Any(), 1, "cus_1", "pm_1", d("300"), "USD", "").
					Return(nil, gateway.ErrPaymentFailed)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "Gateway outage",
			id:   "1",
			body: `{"customer_ref":"cus_1","method_ref":"pm_1","amount":"300","currency":"USD"}`,
			prepareMock: func() {
				service.EXPECT().
					ChargePaymentMethod(gomock.Any(), 1, "cus_1", "pm_1", d("300"), "USD", "").
					Return(nil, gateway.ErrPaymentGateway)
			},
			expectedCode: http.StatusBadGateway,
		},
		{
			name:         "Invalid card number",
			id:           "1",
			body:         `{"customer_ref":"cus_1","card_number":"1234567890123456","amount":"300","currency":"USD"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Valid card number passes the checksum",
			id:   "1",
			body: `{"customer_ref":"cus_1","card_number":"2404815702","amount":"300","currency":"USD"}`,
			prepareMock: func() {
				service.EXPECT().
					ChargePaymentMethod(gomock.Any(), 1, "cus_1", "", d("300"), "USD", "").
					Return(&paymentservice.ChargeResult{GatewayTxnID: "gw_124"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.GatewayChargeResponseDTO{GatewayTxnID: "gw_124"},
		},
		{
			name: "Zero amount",
			id:   "1",
			body: `{"customer_ref":"cus_1","amount":"0","currency":"USD"}`,
			prepareMock: func() {
				service.EXPECT().
					ChargePaymentMethod(gomock.Any(), 1, "cus_1", "", d("0"), "USD", "").
					Return(nil, paymentservice.ErrInvalidAmount)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "Invalid account id",
			id:           "abc",
			body:         `{"amount":"300"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := newRequest(http.MethodPost, "/api/accounts/"+tt.id+"/payments", tt.body, tt.id)
			w := httptest.NewRecorder()
			handler.Charge(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.GatewayChargeResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestRefundHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful refund",
			body: `{"transaction_number":"TXN-20250601-000001","reason":"customer request"}`,
			prepareMock: func() {
				service.EXPECT().
					RefundPayment(gomock.Any(), 1, "TXN-20250601-000001", "customer request").
					Return(&domain.Transaction{Number: "TXN-20250601-000002", Type: domain.TransactionReversal}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Unknown payment",
			body: `{"transaction_number":"TXN-20250601-999999","reason":"customer request"}`,
			prepareMock: func() {
				service.EXPECT().
					RefundPayment(gomock.Any(), 1, "TXN-20250601-999999", "customer request").
					Return(nil, journalservice.ErrTransactionNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Already refunded",
			body: `{"transaction_number":"TXN-20250601-000001","reason":"customer request"}`,
			prepareMock: func() {
				service.EXPECT().
					RefundPayment(gomock.Any(), 1, "TXN-20250601-000001", "customer request").
					Return(nil, journalservice.ErrTransactionNotReversible)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Gateway outage",
			body: `{"transaction_number":"TXN-20250601-000001","reason":"customer request"}`,
			prepareMock: func() {
				service.EXPECT().
					RefundPayment(gomock.Any(), 1, "TXN-20250601-000001", "customer request").
					Return(nil, gateway.ErrPaymentGateway)
			},
			expectedCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := newRequest(http.MethodPost, "/api/accounts/1/refunds", tt.body, "1")
			w := httptest.NewRecorder()
			handler.Refund(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.GatewayChargeResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, "TXN-20250601-000002", body.TransactionNumber)
			}
		})
	}
}
