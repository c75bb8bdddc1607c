package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInvoiceRequestDTO struct {
	AccountID int        `json:"account_id"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

type AddLineItemRequestDTO struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

type RecordPaymentRequestDTO struct {
	Amount decimal.Decimal `json:"amount"`
}

type VoidInvoiceRequestDTO struct {
	Reason string `json:"reason"`
}

type LineItemDTO struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

type InvoiceResponseDTO struct {
	ID          int             `json:"id"`
	Number      string          `json:"invoice_number"`
	AccountID   int             `json:"account_id"`
	Status      string          `json:"status"`
	LineItems   []LineItemDTO   `json:"line_items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	IssuedAt    *time.Time      `json:"issued_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
