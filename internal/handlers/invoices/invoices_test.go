package invoices

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
	"github.com/avialab/flightledger/internal/service/invoiceservice"
)

func NewMock(t *testing.T) (*InvoiceHandler, *MockService) {
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

func pendingInvoice(id int) *domain.Invoice {
	return &domain.Invoice{
		ID:        id,
		AccountID: 1,
		Number:    "INV-202506-0001",
		Status:    domain.InvoicePending,
		LineItems: []domain.LineItem{
			{Description: "flight lesson", Quantity: d("2.5"), UnitPrice: d("100"), Amount: d("250"), TaxAmount: d("25")},
		},
		Subtotal:    d("250"),
		TaxAmount:   d("25"),
		TotalAmount: d("275"),
		CreatedAt:   time.Now(),
	}
}

func TestCreateInvoiceHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Successful creation", func(t *testing.T) {
		service.EXPECT().
			Create(gomock.Any(), 1, nil).
			Return(&domain.Invoice{ID: 4, AccountID: 1, Number: "INV-202506-0001", Status: domain.InvoiceDraft}, nil)

		r := newRequest(http.MethodPost, "/api/invoices", `{"account_id":1}`, "")
		w := httptest.NewRecorder()
		handler.CreateInvoice(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		var body dto.InvoiceResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&body)
		assert.Equal(t, "INV-202506-0001", body.Number)
		assert.Equal(t, "draft", body.Status)
	})

	t.Run("Due date is passed through", func(t *testing.T) {
		due := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
		service.EXPECT().
			Create(gomock.Any(), 1, &due).
			Return(&domain.Invoice{ID: 5, AccountID: 1, Status: domain.InvoiceDraft, DueDate: &due}, nil)

		r := newRequest(http.MethodPost, "/api/invoices", `{"account_id":1,"due_date":"2025-06-30T00:00:00Z"}`, "")
		w := httptest.NewRecorder()
		handler.CreateInvoice(w, r)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Invalid request body", func(t *testing.T) {
		r := newRequest(http.MethodPost, "/api/invoices", `{"account_id":invalid}`, "")
		w := httptest.NewRecorder()
		handler.CreateInvoice(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListInvoicesHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		url          string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Returns account invoices",
			url:  "/api/invoices?account_id=1",
			prepareMock: func() {
				service.EXPECT().
					ListByAccount(gomock.Any(), 1).
					Return([]domain.Invoice{*pendingInvoice(4)}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "No invoices",
			url:  "/api/invoices?account_id=2",
			prepareMock: func() {
				service.EXPECT().
					ListByAccount(gomock.Any(), 2).
					Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "Missing account_id",
			url:          "/api/invoices",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Internal server error",
			url:  "/api/invoices?account_id=1",
			prepareMock: func() {
				service.EXPECT().
					ListByAccount(gomock.Any(), 1).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := newRequest(http.MethodGet, tt.url, "", "")
			w := httptest.NewRecorder()
			handler.ListInvoices(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestAddLineItemHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Adds item and returns recomputed totals", func(t *testing.T) {
		inv := pendingInvoice(4)
		inv.Status = domain.InvoiceDraft

		service.EXPECT().
			AddLineItem(gomock.Any(), 4, domain.LineItem{
				Description: "flight lesson",
				Quantity:    d("2.5"),
				UnitPrice:   d("100"),
				TaxAmount:   d("25"),
			}).
			Return(inv, nil)

		body := `{"description":"flight lesson","quantity":"2.5","unit_price":"100","tax_amount":"25"}`
		r := newRequest(http.MethodPost, "/api/invoices/4/items", body, "4")
		w := httptest.NewRecorder()
		handler.AddLineItem(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.InvoiceResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&resp)
		assert.True(t, resp.TotalAmount.Equal(d("275")))
		assert.True(t, resp.AmountDue.Equal(d("275")))
	})

	t.Run("Non-draft invoice", func(t *testing.T) {
		service.EXPECT().
			AddLineItem(gomock.Any(), 4, gomock.Any()).
			Return(nil, invoiceservice.ErrInvalidStateTransition)

		body := `{"description":"flight lesson","quantity":"1","unit_price":"100"}`
		r := newRequest(http.MethodPost, "/api/invoices/4/items", body, "4")
		w := httptest.NewRecorder()
		handler.AddLineItem(w, r)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestTransitionHandlers(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Finalize succeeds", func(t *testing.T) {
		service.EXPECT().Finalize(gomock.Any(), 4).Return(pendingInvoice(4), nil)

		r := newRequest(http.MethodPost, "/api/invoices/4/finalize", "", "4")
		w := httptest.NewRecorder()
		handler.Finalize(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Finalize without line items", func(t *testing.T) {
		service.EXPECT().Finalize(gomock.Any(), 4).Return(nil, invoiceservice.ErrNoLineItems)

		r := newRequest(http.MethodPost, "/api/invoices/4/finalize", "", "4")
		w := httptest.NewRecorder()
		handler.Finalize(w, r)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Send succeeds", func(t *testing.T) {
		inv := pendingInvoice(4)
		inv.Status = domain.InvoiceSent
		service.EXPECT().Send(gomock.Any(), 4).Return(inv, nil)

		r := newRequest(http.MethodPost, "/api/invoices/4/send", "", "4")
		w := httptest.NewRecorder()
		handler.Send(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown invoice", func(t *testing.T) {
		service.EXPECT().MarkViewed(gomock.Any(), 99).Return(nil, invoiceservice.ErrInvoiceNotFound)

		r := newRequest(http.MethodPost, "/api/invoices/99/viewed", "", "99")
		w := httptest.NewRecorder()
		handler.MarkViewed(w, r)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRecordPaymentHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
		expectedDue  string
	}{
		{
			name: "Full payment settles the invoice",
			body: `{"amount":"275"}`,
			prepareMock: func() {
				inv := pendingInvoice(4)
				inv.Status = domain.InvoicePaid
				inv.AmountPaid = d("275")
				service.EXPECT().
					RecordPayment(gomock.Any(), 4, d("275")).
					Return(inv, nil)
			},
			expectedCode: http.StatusOK,
			expectedDue:  "0",
		},
		{
			name: "Partial payment",
			body: `{"amount":"200"}`,
			prepareMock: func() {
				inv := pendingInvoice(4)
				inv.Status = domain.InvoicePartial
				inv.AmountPaid = d("200")
				service.EXPECT().
					RecordPayment(gomock.Any(), 4, d("200")).
					Return(inv, nil)
			},
			expectedCode: http.StatusOK,
			expectedDue:  "75",
		},
		{
			name: "Draft does not accept payments",
			body: `{"amount":"275"}`,
			prepareMock: func() {
				service.EXPECT().
					RecordPayment(gomock.Any(), 4, d("275")).
					Return(nil, invoiceservice.ErrInvalidStateTransition)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Zero amount",
			body: `{"amount":"0"}`,
			prepareMock: func() {
				service.EXPECT().
					RecordPayment(gomock.Any(), 4, d("0")).
					Return(nil, invoiceservice.ErrInvalidAmount)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := newRequest(http.MethodPost, "/api/invoices/4/payments", tt.body, "4")
			w := httptest.NewRecorder()
			handler.RecordPayment(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.InvoiceResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.True(t, body.AmountDue.Equal(d(tt.expectedDue)))
			}
		})
	}
}

func TestVoidHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Void succeeds", func(t *testing.T) {
		inv := pendingInvoice(4)
		inv.Status = domain.InvoiceVoid
		inv.VoidReason = "duplicate"
		service.EXPECT().Void(gomock.Any(), 4, "duplicate").Return(inv, nil)

		r := newRequest(http.MethodPost, "/api/invoices/4/void", `{"reason":"duplicate"}`, "4")
		w := httptest.NewRecorder()
		handler.Void(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Paid invoice cannot be voided", func(t *testing.T) {
		service.EXPECT().Void(gomock.Any(), 4, "duplicate").Return(nil, invoiceservice.ErrInvalidStateTransition)

		r := newRequest(http.MethodPost, "/api/invoices/4/void", `{"reason":"duplicate"}`, "4")
		w := httptest.NewRecorder()
		handler.Void(w, r)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
