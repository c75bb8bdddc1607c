package invoiceservice

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/events"
	"github.com/avialab/flightledger/internal/pg"
)

type Repo interface {
	NextNumber(ctx context.Context, at time.Time) (string, error)
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, id int) (*domain.Invoice, error)
	GetForUpdate(ctx context.Context, id int) (*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	ListByAccount(ctx context.Context, accountID int) ([]domain.Invoice, error)
	FindOverdue(ctx context.Context, now time.Time, limit int) ([]domain.Invoice, error)
}

// Ledger applies invoice payments to the owning account. The aggregator
// never mutates balances itself.
type Ledger interface {
	Payment(ctx context.Context, accountID int, amount decimal.Decimal, description, reference string) (*domain.Transaction, error)
}

var (
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrInvalidStateTransition = errors.New("invalid invoice state transition")
	ErrNoLineItems            = errors.New("invoice has no line items")
	ErrInvalidAmount          = errors.New("amount must be positive")
)

type Service struct {
	repo      Repo
	ledger    Ledger
	txManager pg.TXManager
	publisher events.Publisher
	now       func() time.Time
}

func New(repo Repo, ledger Ledger, txManager pg.TXManager, publisher events.Publisher) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		txManager: txManager,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *Service) Create(ctx context.Context, accountID int, dueDate *time.Time) (*domain.Invoice, error) {
	var inv *domain.Invoice
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		number, err := s.repo.NextNumber(ctx, s.now())
		if err != nil {
			return err
		}
		inv = &domain.Invoice{
			AccountID: accountID,
			Number:    number,
			Status:    domain.InvoiceDraft,
			LineItems: []domain.LineItem{},
			DueDate:   dueDate,
		}
		inv, err = s.repo.Create(ctx, inv)
		return err
	})
	if err != nil {
		zap.L().Error("failed to create invoice", zap.Error(err))
		return nil, err
	}
	return inv, nil
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvoiceNotFound
	}
	return inv, nil
}

func (s *Service) ListByAccount(ctx context.Context, accountID int) ([]domain.Invoice, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

// AddLineItem appends an item to a draft. The item amount is always
// derived from quantity and unit price; totals are recomputed from the
// full item list so they can never drift.
func (s *Service) AddLineItem(ctx context.Context, invoiceID int, item domain.LineItem) (*domain.Invoice, error) {
	var result *domain.Invoice
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return ErrInvoiceNotFound
		}
		if inv.Status != domain.InvoiceDraft {
			return ErrInvalidStateTransition
		}
		item.Amount = item.Quantity.Mul(item.UnitPrice)
		inv.LineItems = append(inv.LineItems, item)
		inv.RecomputeTotals()
		if err := s.repo.Update(ctx, inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Finalize freezes the line items and moves draft to pending.
func (s *Service) Finalize(ctx context.Context, invoiceID int) (*domain.Invoice, error) {
	return s.transition(ctx, invoiceID, func(inv *domain.Invoice) error {
		if inv.Status != domain.InvoiceDraft {
			return ErrInvalidStateTransition
		}
		if len(inv.LineItems) == 0 {
			return ErrNoLineItems
		}
		inv.RecomputeTotals()
		inv.Status = domain.InvoicePending
		issued := s.now()
		inv.IssuedAt = &issued
		return nil
	})
}

func (s *Service) Send(ctx context.Context, invoiceID int) (*domain.Invoice, error) {
	return s.transition(ctx, invoiceID, func(inv *domain.Invoice) error {
		if inv.Status != domain.InvoicePending {
			return ErrInvalidStateTransition
		}
		inv.Status = domain.InvoiceSent
		return nil
	})
}

func (s *Service) MarkViewed(ctx context.Context, invoiceID int) (*domain.Invoice, error) {
	return s.transition(ctx, invoiceID, func(inv *domain.Invoice) error {
		if inv.Status != domain.InvoiceSent {
			return ErrInvalidStateTransition
		}
		inv.Status = domain.InvoiceViewed
		return nil
	})
}

// RecordPayment applies a payment to the invoice and records the matching
// ledger entry on the owning account in the same atomic unit.
func (s *Service) RecordPayment(ctx context.Context, invoiceID int, amount decimal.Decimal) (*domain.Invoice, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	var result *domain.Invoice
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return ErrInvoiceNotFound
		}
		switch inv.Status {
		case domain.InvoicePending, domain.InvoiceSent, domain.InvoiceViewed,
			domain.InvoicePartial, domain.InvoiceOverdue:
		default:
			return ErrInvalidStateTransition
		}

		if _, err := s.ledger.Payment(ctx, inv.AccountID, amount, "invoice payment", inv.Number); err != nil {
			return err
		}

		inv.AmountPaid = inv.AmountPaid.Add(amount)
		switch {
		case inv.AmountPaid.GreaterThanOrEqual(inv.TotalAmount):
			inv.Status = domain.InvoicePaid
		case inv.AmountPaid.IsPositive():
			inv.Status = domain.InvoicePartial
		}
		if err := s.repo.Update(ctx, inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Status == domain.InvoicePaid {
		s.publisher.Publish(ctx, events.New(events.InvoicePaid, map[string]any{
			"invoice_id":     invoiceID,
			"invoice_number": result.Number,
		}))
	}
	return result, nil
}

// Void terminally cancels an invoice. Paid invoices cannot be voided.
func (s *Service) Void(ctx context.Context, invoiceID int, reason string) (*domain.Invoice, error) {
	return s.transition(ctx, invoiceID, func(inv *domain.Invoice) error {
		if inv.Status.IsTerminal() {
			return ErrInvalidStateTransition
		}
		inv.Status = domain.InvoiceVoid
		inv.VoidReason = reason
		return nil
	})
}

// MarkOverdue flips unpaid invoices past their due date. Called by the
// background sweep.
func (s *Service) MarkOverdue(ctx context.Context, limit int) (int, error) {
	invoices, err := s.repo.FindOverdue(ctx, s.now(), limit)
	if err != nil {
		return 0, err
	}
	marked := 0
	for i := range invoices {
		inv := invoices[i]
		_, err := s.transition(ctx, inv.ID, func(locked *domain.Invoice) error {
			switch locked.Status {
			case domain.InvoicePending, domain.InvoiceSent, domain.InvoiceViewed, domain.InvoicePartial:
				locked.Status = domain.InvoiceOverdue
				return nil
			}
			return ErrInvalidStateTransition
		})
		if err != nil {
			if !errors.Is(err, ErrInvalidStateTransition) {
				zap.L().Error("failed to mark invoice overdue", zap.Int("invoice_id", inv.ID), zap.Error(err))
			}
			continue
		}
		marked++
		s.publisher.Publish(ctx, events.New(events.InvoiceOverdue, map[string]any{
			"invoice_id":     inv.ID,
			"invoice_number": inv.Number,
		}))
	}
	return marked, nil
}

func (s *Service) transition(ctx context.Context, invoiceID int, fn func(inv *domain.Invoice) error) (*domain.Invoice, error) {
	var result *domain.Invoice
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return ErrInvoiceNotFound
		}
		if err := fn(inv); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
