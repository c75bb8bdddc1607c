package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuoteRequestDTO struct {
	OrganizationID int             `json:"organization_id"`
	ChargeType     string          `json:"charge_type"`
	TargetID       *int            `json:"target_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	At             *time.Time      `json:"at,omitempty"`
	Weekend        bool            `json:"weekend"`
	Holiday        bool            `json:"holiday"`
	Night          bool            `json:"night"`
	Peak           bool            `json:"peak"`
	IsMember       bool            `json:"is_member"`
}

type QuoteResponseDTO struct {
	BaseAmount     decimal.Decimal `json:"base_amount"`
	AdjustedAmount decimal.Decimal `json:"adjusted_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}

type TierDTO struct {
	From  decimal.Decimal  `json:"from"`
	To    *decimal.Decimal `json:"to,omitempty"`
	Price decimal.Decimal  `json:"price"`
}

type BulkDiscountTierDTO struct {
	MinUnits decimal.Decimal `json:"min_units"`
	Percent  decimal.Decimal `json:"percent"`
}

type CreateRuleResponseDTO struct {
	ID int `json:"id"`
	CreateRuleRequestDTO
}

type CreateRuleRequestDTO struct {
	OrganizationID        int                   `json:"organization_id"`
	ChargeType            string                `json:"charge_type"`
	TargetID              *int                  `json:"target_id,omitempty"`
	Priority              int                   `json:"priority"`
	EffectiveFrom         time.Time             `json:"effective_from"`
	EffectiveTo           *time.Time            `json:"effective_to,omitempty"`
	BasePrice             decimal.Decimal       `json:"base_price"`
	Unit                  string                `json:"unit"`
	CalculationMethod     string                `json:"calculation_method"`
	Tiers                 []TierDTO             `json:"tiers,omitempty"`
	BlockSize             decimal.Decimal       `json:"block_size"`
	MinimumUnits          decimal.Decimal       `json:"minimum_units"`
	MinimumCharge         decimal.Decimal       `json:"minimum_charge"`
	WeekendMultiplier     decimal.Decimal       `json:"weekend_multiplier"`
	HolidayMultiplier     decimal.Decimal       `json:"holiday_multiplier"`
	NightMultiplier       decimal.Decimal       `json:"night_multiplier"`
	PeakMultiplier        decimal.Decimal       `json:"peak_multiplier"`
	MemberDiscountPercent decimal.Decimal       `json:"member_discount_percent"`
	BulkDiscountTiers     []BulkDiscountTierDTO `json:"bulk_discount_tiers,omitempty"`
	TaxRate               decimal.Decimal       `json:"tax_rate"`
	TaxInclusive          bool                  `json:"tax_inclusive"`
}
