package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CalculationMethod string

const (
	CalcPerUnit CalculationMethod = "per_unit"
	CalcFlat    CalculationMethod = "flat"
	CalcTiered  CalculationMethod = "tiered"
	CalcBlock   CalculationMethod = "block"
)

// PriceTier is a half-open [From, To) consumption band. A nil To means
// the band is unbounded.
type PriceTier struct {
	From  decimal.Decimal  `json:"from"`
	To    *decimal.Decimal `json:"to"`
	Price decimal.Decimal  `json:"price"`
}

// BulkDiscountTier grants Percent off once quantity reaches MinUnits.
type BulkDiscountTier struct {
	MinUnits decimal.Decimal `json:"min_units"`
	Percent  decimal.Decimal `json:"percent"`
}

type PricingRule struct {
	ID                    int                `db:"id"`
	OrganizationID        int                `db:"organization_id"`
	ChargeType            string             `db:"charge_type"`
	TargetID              *int               `db:"target_id"`
	Priority              int                `db:"priority"`
	EffectiveFrom         time.Time          `db:"effective_from"`
	EffectiveTo           *time.Time         `db:"effective_to"`
	BasePrice             decimal.Decimal    `db:"base_price"`
	Unit                  string             `db:"unit"`
	Method                CalculationMethod  `db:"calculation_method"`
	Tiers                 []PriceTier        `db:"tiers"`
	BlockSize             decimal.Decimal    `db:"block_size"`
	MinimumUnits          decimal.Decimal    `db:"minimum_units"`
	MinimumCharge         decimal.Decimal    `db:"minimum_charge"`
	WeekendMultiplier     decimal.Decimal    `db:"weekend_multiplier"`
	HolidayMultiplier     decimal.Decimal    `db:"holiday_multiplier"`
	NightMultiplier       decimal.Decimal    `db:"night_multiplier"`
	PeakMultiplier        decimal.Decimal    `db:"peak_multiplier"`
	MemberDiscountPercent decimal.Decimal    `db:"member_discount_percent"`
	BulkDiscountTiers     []BulkDiscountTier `db:"bulk_discount_tiers"`
	TaxRate               decimal.Decimal    `db:"tax_rate"`
	TaxInclusive          bool               `db:"tax_inclusive"`
	CreatedAt             time.Time          `db:"created_at"`
}

// PriceModifiers select which rate multipliers and discounts apply.
type PriceModifiers struct {
	Weekend  bool
	Holiday  bool
	Night    bool
	Peak     bool
	IsMember bool
}

type PriceBreakdown struct {
	BaseAmount     decimal.Decimal `json:"base_amount"`
	AdjustedAmount decimal.Decimal `json:"adjusted_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}
