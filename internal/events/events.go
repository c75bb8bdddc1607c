package events

import (
	"context"
	"time"
)

// Lifecycle event names published by the finance services.
const (
	AccountCreated      = "account.created"
	AccountSuspended    = "account.suspended"
	AccountClosed       = "account.closed"
	TransactionCreated  = "transaction.created"
	TransactionReversed = "transaction.reversed"
	InvoicePaid         = "invoice.paid"
	InvoiceOverdue      = "invoice.overdue"
	PackagePurchased    = "package.purchased"
	PackageUsed         = "package.used"
	PackageDepleted     = "package.depleted"
	PackageExpired      = "package.expired"
)

type Event struct {
	Name       string         `json:"name"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

func New(name string, payload map[string]any) Event {
	return Event{
		Name:       name,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers lifecycle events fire-and-forget. Implementations
// must never propagate delivery failures into the mutation that raised
// the event.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
