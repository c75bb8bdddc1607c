package pricingservice

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avialab/flightledger/internal/domain"
)

type Repo interface {
	FindApplicable(ctx context.Context, orgID int, chargeType string, targetID *int, at time.Time) (*domain.PricingRule, error)
	Create(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
}

var (
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrPricingRuleNotFound = errors.New("no applicable pricing rule")
	ErrUnknownMethod       = errors.New("unknown calculation method")
	ErrInvalidMultiplier   = errors.New("rate multiplier must not be negative")
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// Quote resolves the applicable rule for the charge on the given date
// and prices the quantity against it.
func (s *Service) Quote(ctx context.Context, orgID int, chargeType string, targetID *int, quantity decimal.Decimal, at time.Time, mods domain.PriceModifiers) (*domain.PriceBreakdown, error) {
	rule, err := s.repo.FindApplicable(ctx, orgID, chargeType, targetID, at)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrPricingRuleNotFound
	}
	return Calculate(rule, quantity, mods)
}

// CreateRule stores a rule after normalizing its rate multipliers. An
// omitted or zero multiplier is stored as the neutral 1, matching the
// column defaults; negative multipliers are rejected.
func (s *Service) CreateRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	for _, m := range []*decimal.Decimal{
		&rule.WeekendMultiplier,
		&rule.HolidayMultiplier,
		&rule.NightMultiplier,
		&rule.PeakMultiplier,
	} {
		if m.IsNegative() {
			return nil, ErrInvalidMultiplier
		}
		if m.IsZero() {
			*m = one
		}
	}
	return s.repo.Create(ctx, rule)
}

// Calculate prices quantity against a rule. Pure: no state, no I/O.
//
// Pipeline: base amount by method, minimum-charge floor, multiplicative
// rate modifiers, member and bulk discounts stacked additively on the
// adjusted amount, then inclusive or exclusive tax.
func Calculate(rule *domain.PricingRule, quantity decimal.Decimal, mods domain.PriceModifiers) (*domain.PriceBreakdown, error) {
	if !quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	base, err := baseAmount(rule, quantity)
	if err != nil {
		return nil, err
	}
	if rule.MinimumCharge.IsPositive() && base.LessThan(rule.MinimumCharge) {
		base = rule.MinimumCharge
	}

	adjusted := base
	for _, m := range activeMultipliers(rule, mods) {
		adjusted = adjusted.Mul(m)
	}

	discount := decimal.Zero
	if mods.IsMember && rule.MemberDiscountPercent.IsPositive() {
		discount = discount.Add(adjusted.Mul(rule.MemberDiscountPercent).Div(hundred))
	}
	if pct := bulkDiscountPercent(rule.BulkDiscountTiers, quantity); pct.IsPositive() {
		discount = discount.Add(adjusted.Mul(pct).Div(hundred))
	}

	subtotal := adjusted.Sub(discount)

	var tax, total decimal.Decimal
	if rule.TaxRate.IsPositive() {
		if rule.TaxInclusive {
			tax = subtotal.Sub(subtotal.Div(decimal.NewFromInt(1).Add(rule.TaxRate.Div(hundred))))
			total = subtotal
		} else {
			tax = subtotal.Mul(rule.TaxRate).Div(hundred)
			total = subtotal.Add(tax)
		}
	} else {
		total = subtotal
	}

	return &domain.PriceBreakdown{
		BaseAmount:     base.Round(2),
		AdjustedAmount: adjusted.Round(2),
		DiscountAmount: discount.Round(2),
		Subtotal:       subtotal.Round(2),
		TaxAmount:      tax.Round(2),
		Total:          total.Round(2),
	}, nil
}

func baseAmount(rule *domain.PricingRule, quantity decimal.Decimal) (decimal.Decimal, error) {
	switch rule.Method {
	case domain.CalcPerUnit:
		return rule.BasePrice.Mul(quantity), nil
	case domain.CalcFlat:
		return rule.BasePrice, nil
	case domain.CalcTiered:
		return tieredAmount(rule.Tiers, rule.BasePrice, quantity), nil
	case domain.CalcBlock:
		return blockAmount(rule, quantity), nil
	}
	return decimal.Zero, ErrUnknownMethod
}

// tieredAmount sums per-band prices over half-open [from, to) ranges.
// Quantity beyond the last band is billed at the last band's price.
func tieredAmount(tiers []domain.PriceTier, basePrice, quantity decimal.Decimal) decimal.Decimal {
	if len(tiers) == 0 {
		return basePrice.Mul(quantity)
	}
	sorted := make([]domain.PriceTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].From.LessThan(sorted[j].From) })

	amount := decimal.Zero
	for _, t := range sorted {
		if quantity.LessThanOrEqual(t.From) {
			break
		}
		upper := quantity
		if t.To != nil && t.To.LessThan(quantity) {
			upper = *t.To
		}
		amount = amount.Add(t.Price.Mul(upper.Sub(t.From)))
	}

	last := sorted[len(sorted)-1]
	if last.To != nil && quantity.GreaterThan(*last.To) {
		amount = amount.Add(last.Price.Mul(quantity.Sub(*last.To)))
	}
	return amount
}

// blockAmount rounds consumption up to whole blocks, floored at the
// minimum billable units.
func blockAmount(rule *domain.PricingRule, quantity decimal.Decimal) decimal.Decimal {
	units := quantity
	if rule.BlockSize.IsPositive() {
		blocks := quantity.Div(rule.BlockSize).Ceil()
		units = blocks.Mul(rule.BlockSize)
	}
	if units.LessThan(rule.MinimumUnits) {
		units = rule.MinimumUnits
	}
	return rule.BasePrice.Mul(units)
}

// activeMultipliers returns the stored multiplier for each modifier the
// caller flagged. Values apply as written, including zero.
func activeMultipliers(rule *domain.PricingRule, mods domain.PriceModifiers) []decimal.Decimal {
	var ms []decimal.Decimal
	if mods.Weekend {
		ms = append(ms, rule.WeekendMultiplier)
	}
	if mods.Holiday {
		ms = append(ms, rule.HolidayMultiplier)
	}
	if mods.Night {
		ms = append(ms, rule.NightMultiplier)
	}
	if mods.Peak {
		ms = append(ms, rule.PeakMultiplier)
	}
	return ms
}

// bulkDiscountPercent picks the highest min_units tier the quantity
// meets. Tiers are evaluated by descending threshold, first match wins.
func bulkDiscountPercent(tiers []domain.BulkDiscountTier, quantity decimal.Decimal) decimal.Decimal {
	if len(tiers) == 0 {
		return decimal.Zero
	}
	sorted := make([]domain.BulkDiscountTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinUnits.GreaterThan(sorted[j].MinUnits) })

	for _, t := range sorted {
		if quantity.GreaterThanOrEqual(t.MinUnits) {
			return t.Percent
		}
	}
	return decimal.Zero
}
