package pricingrepo

import (
	"context"
	"encoding/json"
	"errors"
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

const ruleColumns = `id, organization_id, charge_type, target_id, priority, effective_from, effective_to, base_price, unit, calculation_method, tiers, block_size, minimum_units, minimum_charge, weekend_multiplier, holiday_multiplier, night_multiplier, peak_multiplier, member_discount_percent, bulk_discount_tiers, tax_rate, tax_inclusive, created_at`

func scanRule(row pgx.Row) (*domain.PricingRule, error) {
	var rule domain.PricingRule
	var tiersJSON, bulkJSON []byte
	err := row.Scan(
		&rule.ID, &rule.OrganizationID, &rule.ChargeType, &rule.TargetID,
		&rule.Priority, &rule.EffectiveFrom, &rule.EffectiveTo,
		&rule.BasePrice, &rule.Unit, &rule.Method, &tiersJSON,
		&rule.BlockSize, &rule.MinimumUnits, &rule.MinimumCharge,
		&rule.WeekendMultiplier, &rule.HolidayMultiplier,
		&rule.NightMultiplier, &rule.PeakMultiplier,
		&rule.MemberDiscountPercent, &bulkJSON,
		&rule.TaxRate, &rule.TaxInclusive, &rule.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan pricing rule row", zap.Error(err))
		return nil, err
	}
	if err := json.Unmarshal(tiersJSON, &rule.Tiers); err != nil {
		zap.L().Error("can't decode pricing tiers", zap.Error(err))
		return nil, err
	}
	if err := json.Unmarshal(bulkJSON, &rule.BulkDiscountTiers); err != nil {
		zap.L().Error("can't decode bulk discount tiers", zap.Error(err))
		return nil, err
	}
	return &rule, nil
}

// FindApplicable returns the highest-priority rule effective on the given
// date. A targetID match is preferred; rules with no target act as the
// organization-wide fallback.
func (r *Repository) FindApplicable(ctx context.Context, orgID int, chargeType string, targetID *int, at time.Time) (*domain.PricingRule, error) {
	if targetID != nil {
		query := `
            SELECT ` + ruleColumns + `
            FROM pricing_rules
            WHERE organization_id = $1 AND charge_type = $2 AND target_id = $3
              AND effective_from <= $4 AND (effective_to IS NULL OR effective_to > $4)
            ORDER BY priority DESC
            LIMIT 1
        `
		rule, err := scanRule(r.db.QueryRow(ctx, query, orgID, chargeType, *targetID, at))
		if err != nil {
			return nil, err
		}
		if rule != nil {
			return rule, nil
		}
	}

	query := `
        SELECT ` + ruleColumns + `
        FROM pricing_rules
        WHERE organization_id = $1 AND charge_type = $2 AND target_id IS NULL
          AND effective_from <= $3 AND (effective_to IS NULL OR effective_to > $3)
        ORDER BY priority DESC
        LIMIT 1
    `
	return scanRule(r.db.QueryRow(ctx, query, orgID, chargeType, at))
}

func (r *Repository) Create(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	tiersJSON, err := json.Marshal(rule.Tiers)
	if err != nil {
		return nil, err
	}
	bulkJSON, err := json.Marshal(rule.BulkDiscountTiers)
	if err != nil {
		return nil, err
	}
	query := `
        INSERT INTO pricing_rules (organization_id, charge_type, target_id, priority, effective_from, effective_to, base_price, unit, calculation_method, tiers, block_size, minimum_units, minimum_charge, weekend_multiplier, holiday_multiplier, night_multiplier, peak_multiplier, member_discount_percent, bulk_discount_tiers, tax_rate, tax_inclusive)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
        RETURNING id, created_at
    `
	err = r.db.QueryRow(ctx, query,
		rule.OrganizationID, rule.ChargeType, rule.TargetID, rule.Priority,
		rule.EffectiveFrom, rule.EffectiveTo, rule.BasePrice, rule.Unit,
		rule.Method, tiersJSON, rule.BlockSize, rule.MinimumUnits,
		rule.MinimumCharge, rule.WeekendMultiplier, rule.HolidayMultiplier,
		rule.NightMultiplier, rule.PeakMultiplier, rule.MemberDiscountPercent,
		bulkJSON, rule.TaxRate, rule.TaxInclusive,
	).Scan(&rule.ID, &rule.CreatedAt)
	if err != nil {
		zap.L().Error("can't save pricing rule", zap.Error(err))
		return nil, err
	}
	return rule, nil
}
