package invoicerepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const invoiceColumns = `id, account_id, invoice_number, status, line_items, subtotal, tax_amount, discount_amount, shipping_amount, total_amount, amount_paid, void_reason, due_date, issued_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	var itemsJSON []byte
	err := row.Scan(
		&inv.ID, &inv.AccountID, &inv.Number, &inv.Status, &itemsJSON,
		&inv.Subtotal, &inv.TaxAmount, &inv.DiscountAmount, &inv.ShippingAmount,
		&inv.TotalAmount, &inv.AmountPaid, &inv.VoidReason,
		&inv.DueDate, &inv.IssuedAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan invoice row", zap.Error(err))
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &inv.LineItems); err != nil {
		zap.L().Error("can't decode invoice line items", zap.Error(err))
		return nil, err
	}
	return &inv, nil
}

// NextNumber bumps the per-month sequence row atomically.
func (r *Repository) NextNumber(ctx context.Context, at time.Time) (string, error) {
	query := `
        INSERT INTO invoice_sequences (month, last_value)
        VALUES ($1, 1)
        ON CONFLICT (month) DO UPDATE SET last_value = invoice_sequences.last_value + 1
        RETURNING last_value
    `
	month := at.UTC().Format("200601")
	var seq int64
	if err := r.db.QueryRow(ctx, query, month).Scan(&seq); err != nil {
		zap.L().Error("can't advance invoice sequence", zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("INV-%s-%04d", month, seq), nil
}

func (r *Repository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	itemsJSON, err := json.Marshal(inv.LineItems)
	if err != nil {
		return nil, err
	}
	query := `
        INSERT INTO invoices (account_id, invoice_number, status, line_items, subtotal, tax_amount, discount_amount, shipping_amount, total_amount, amount_paid, due_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at, updated_at
    `
	err = r.db.QueryRow(ctx, query,
		inv.AccountID, inv.Number, inv.Status, itemsJSON,
		inv.Subtotal, inv.TaxAmount, inv.DiscountAmount, inv.ShippingAmount,
		inv.TotalAmount, inv.AmountPaid, inv.DueDate,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save invoice", zap.Error(err))
		return nil, err
	}
	return inv, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Invoice, error) {
	query := `
        SELECT ` + invoiceColumns + `
        FROM invoices
        WHERE id = $1
    `
	return scanInvoice(r.db.QueryRow(ctx, query, id))
}

// GetForUpdate locks the invoice row for a state transition.
func (r *Repository) GetForUpdate(ctx context.Context, id int) (*domain.Invoice, error) {
	query := `
        SELECT ` + invoiceColumns + `
        FROM invoices
        WHERE id = $1
        FOR UPDATE
    `
	return scanInvoice(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) Update(ctx context.Context, inv *domain.Invoice) error {
	itemsJSON, err := json.Marshal(inv.LineItems)
	if err != nil {
		return err
	}
	query := `
        UPDATE invoices
        SET status = $1, line_items = $2, subtotal = $3, tax_amount = $4,
            discount_amount = $5, shipping_amount = $6, total_amount = $7,
            amount_paid = $8, void_reason = $9, due_date = $10, issued_at = $11,
            updated_at = now()
        WHERE id = $12
    `
	_, err = r.db.Exec(ctx, query,
		inv.Status, itemsJSON, inv.Subtotal, inv.TaxAmount,
		inv.DiscountAmount, inv.ShippingAmount, inv.TotalAmount,
		inv.AmountPaid, inv.VoidReason, inv.DueDate, inv.IssuedAt, inv.ID,
	)
	if err != nil {
		zap.L().Error("can't update invoice", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListByAccount(ctx context.Context, accountID int) ([]domain.Invoice, error) {
	query := `
        SELECT ` + invoiceColumns + `
        FROM invoices
        WHERE account_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("can't get invoices", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		var itemsJSON []byte
		err := rows.Scan(
			&inv.ID, &inv.AccountID, &inv.Number, &inv.Status, &itemsJSON,
			&inv.Subtotal, &inv.TaxAmount, &inv.DiscountAmount, &inv.ShippingAmount,
			&inv.TotalAmount, &inv.AmountPaid, &inv.VoidReason,
			&inv.DueDate, &inv.IssuedAt, &inv.CreatedAt, &inv.UpdatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan invoice row", zap.Error(err))
			return nil, err
		}
		if err := json.Unmarshal(itemsJSON, &inv.LineItems); err != nil {
			zap.L().Error("can't decode invoice line items", zap.Error(err))
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// FindOverdue returns non-terminal, unpaid invoices past their due date.
func (r *Repository) FindOverdue(ctx context.Context, now time.Time, limit int) ([]domain.Invoice, error) {
	query := `
        SELECT ` + invoiceColumns + `
        FROM invoices
        WHERE status IN ($1, $2, $3, $4) AND due_date IS NOT NULL AND due_date <= $5
        ORDER BY due_date
        LIMIT $6
    `
	rows, err := r.db.Query(ctx, query,
		domain.InvoicePending, domain.InvoiceSent, domain.InvoiceViewed, domain.InvoicePartial,
		now, limit,
	)
	if err != nil {
		zap.L().Error("can't get overdue invoices", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		var itemsJSON []byte
		err := rows.Scan(
			&inv.ID, &inv.AccountID, &inv.Number, &inv.Status, &itemsJSON,
			&inv.Subtotal, &inv.TaxAmount, &inv.DiscountAmount, &inv.ShippingAmount,
			&inv.TotalAmount, &inv.AmountPaid, &inv.VoidReason,
			&inv.DueDate, &inv.IssuedAt, &inv.CreatedAt, &inv.UpdatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan invoice row", zap.Error(err))
			return nil, err
		}
		if err := json.Unmarshal(itemsJSON, &inv.LineItems); err != nil {
			zap.L().Error("can't decode invoice line items", zap.Error(err))
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}
