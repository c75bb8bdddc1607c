package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
	AccountClosed    AccountStatus = "closed"
)

type Account struct {
	ID             int             `db:"id"`
	OrganizationID int             `db:"organization_id"`
	OwnerID        int             `db:"owner_id"`
	AccountNumber  string          `db:"account_number"`
	Balance        decimal.Decimal `db:"balance"`
	CreditLimit    decimal.Decimal `db:"credit_limit"`
	PendingCharges decimal.Decimal `db:"pending_charges"`
	Status         AccountStatus   `db:"status"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// AvailableBalance is the balance plus unused credit limit minus
// uncommitted holds.
func (a *Account) AvailableBalance() decimal.Decimal {
	return a.Balance.Add(a.CreditLimit).Sub(a.PendingCharges)
}

func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}
