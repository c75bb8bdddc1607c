package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchasePackageRequestDTO struct {
	AccountID    int              `json:"account_id"`
	Name         string           `json:"name"`
	Credit       *decimal.Decimal `json:"credit,omitempty"`
	Hours        *decimal.Decimal `json:"hours,omitempty"`
	ValidityDays int              `json:"validity_days"`
}

type UsePackageRequestDTO struct {
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

type PackageResponseDTO struct {
	ID              int              `json:"id"`
	AccountID       int              `json:"account_id"`
	Name            string           `json:"name"`
	CreditRemaining *decimal.Decimal `json:"credit_remaining,omitempty"`
	HoursRemaining  *decimal.Decimal `json:"hours_remaining,omitempty"`
	PurchasedAt     time.Time        `json:"purchased_at"`
	ExpiresAt       time.Time        `json:"expires_at"`
	Status          string           `json:"status"`
}

type PackageUsageResponseDTO struct {
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Remaining decimal.Decimal `json:"remaining"`
	Reference string          `json:"reference,omitempty"`
	UsedAt    time.Time       `json:"used_at"`
}
