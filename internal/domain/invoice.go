package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoicePending   InvoiceStatus = "pending"
	InvoiceSent      InvoiceStatus = "sent"
	InvoiceViewed    InvoiceStatus = "viewed"
	InvoicePartial   InvoiceStatus = "partial"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceVoid      InvoiceStatus = "void"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoicePaid || s == InvoiceVoid || s == InvoiceCancelled
}

type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

type Invoice struct {
	ID             int             `db:"id"`
	AccountID      int             `db:"account_id"`
	Number         string          `db:"invoice_number"`
	Status         InvoiceStatus   `db:"status"`
	LineItems      []LineItem      `db:"line_items"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	TaxAmount      decimal.Decimal `db:"tax_amount"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	ShippingAmount decimal.Decimal `db:"shipping_amount"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	AmountPaid     decimal.Decimal `db:"amount_paid"`
	VoidReason     string          `db:"void_reason"`
	DueDate        *time.Time      `db:"due_date"`
	IssuedAt       *time.Time      `db:"issued_at"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (i *Invoice) AmountDue() decimal.Decimal {
	due := i.TotalAmount.Sub(i.AmountPaid)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// RecomputeTotals derives subtotal, tax and total from the line items.
// Totals are never edited independently of the items.
func (i *Invoice) RecomputeTotals() {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, li := range i.LineItems {
		subtotal = subtotal.Add(li.Amount)
		tax = tax.Add(li.TaxAmount)
	}
	i.Subtotal = subtotal
	i.TaxAmount = tax
	i.TotalAmount = subtotal.Add(tax).Sub(i.DiscountAmount).Add(i.ShippingAmount)
}
