package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PackageStatus string

const (
	PackageActive    PackageStatus = "active"
	PackageDepleted  PackageStatus = "depleted"
	PackageExpired   PackageStatus = "expired"
	PackageCancelled PackageStatus = "cancelled"
	PackageRefunded  PackageStatus = "refunded"
)

type UsageKind string

const (
	UsageCredit UsageKind = "credit"
	UsageHours  UsageKind = "hours"
)

// UserPackage is a purchased prepaid package. Credit and hours balances
// are independently optional and only ever decrease.
type UserPackage struct {
	ID              int              `db:"id"`
	AccountID       int              `db:"account_id"`
	PackageName     string           `db:"package_name"`
	CreditRemaining *decimal.Decimal `db:"credit_remaining"`
	HoursRemaining  *decimal.Decimal `db:"hours_remaining"`
	PurchasedAt     time.Time        `db:"purchased_at"`
	ExpiresAt       time.Time        `db:"expires_at"`
	Status          PackageStatus    `db:"status"`
}

func (p *UserPackage) HasRemainingBalance() bool {
	if p.CreditRemaining != nil && p.CreditRemaining.IsPositive() {
		return true
	}
	if p.HoursRemaining != nil && p.HoursRemaining.IsPositive() {
		return true
	}
	return false
}

func (p *UserPackage) IsActive(now time.Time) bool {
	return p.Status == PackageActive && now.Before(p.ExpiresAt) && p.HasRemainingBalance()
}

// PackageUsage is one append-only draw-down record.
type PackageUsage struct {
	ID            int             `db:"id"`
	UserPackageID int             `db:"user_package_id"`
	Kind          UsageKind       `db:"kind"`
	Amount        decimal.Decimal `db:"amount"`
	Remaining     decimal.Decimal `db:"remaining"`
	Reference     string          `db:"reference"`
	UsedAt        time.Time       `db:"used_at"`
}
