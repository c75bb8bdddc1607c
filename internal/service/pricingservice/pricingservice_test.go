package pricingservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/avialab/flightledger/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo)
	defer ctrl.Finish()
	return service, repo
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		rule     *domain.PricingRule
		quantity decimal.Decimal
		mods     domain.PriceModifiers
		expected *domain.PriceBreakdown
		wantErr  error
	}{
		{
			name: "Per unit hourly rate",
			rule: &domain.PricingRule{
				Method:    domain.CalcPerUnit,
				BasePrice: d("100"),
			},
			quantity: d("2.5"),
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("250"),
				AdjustedAmount: d("250"),
				DiscountAmount: d("0"),
				Subtotal:       d("250"),
				TaxAmount:      d("0"),
				Total:          d("250"),
			},
		},
		{
			name: "Flat rate ignores quantity",
			rule: &domain.PricingRule{
				Method:    domain.CalcFlat,
				BasePrice: d("75"),
			},
			quantity: d("9"),
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("75"),
				AdjustedAmount: d("75"),
				DiscountAmount: d("0"),
				Subtotal:       d("75"),
				TaxAmount:      d("0"),
				Total:          d("75"),
			},
		},
		{
			name: "Block rounding floored at minimum units",
			rule: &domain.PricingRule{
				Method:       domain.CalcBlock,
				BasePrice:    d("100"),
				BlockSize:    d("0.5"),
				MinimumUnits: d("1"),
			},
			quantity: d("0.3"),
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("100"),
				AdjustedAmount: d("100"),
				DiscountAmount: d("0"),
				Subtotal:       d("100"),
				TaxAmount:      d("0"),
				Total:          d("100"),
			},
		},
		{
			name: "Block rounds partial consumption up",
			rule: &domain.PricingRule{
				Method:    domain.CalcBlock,
				BasePrice: d("10"),
				BlockSize: d("0.5"),
			},
			quantity: d("1.7"),
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("20"),
				AdjustedAmount: d("20"),
				DiscountAmount: d("0"),
				Subtotal:       d("20"),
				TaxAmount:      d("0"),
				Total:          d("20"),
			},
		},
		{
			name: "Tiered bands with unbounded tail",
			rule: &domain.PricingRule{
				Method: domain.CalcTiered,
				Tiers: []domain.PriceTier{
					{From: d("0"), To: dp("10"), Price: d("10")},
					{From: d("10"), To: nil, Price: d("8")},
				},
			},
			quantity: d("15"),
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("140"),
				AdjustedAmount: d("140"),
				DiscountAmount: d("0"),
				Subtotal:       d("140"),
				TaxAmount:      d("0"),
				Total:          d("140"),
			},
		},
		{
			name: "Tiered quantity beyond last bounded band",
			rule: &domain.PricingRule{
				Method: domain.CalcTiered,
				Tiers: []domain.PriceTier{
					{From: d("0"), To: dp("10"), Price: d("10")},
				},
			},
			quantity: d("12"),
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("120"),
				AdjustedAmount: d("120"),
				DiscountAmount: d("0"),
				Subtotal:       d("120"),
				TaxAmount:      d("0"),
				Total:          d("120"),
			},
		},
		{
			name: "Weekend multiplier with member discount",
			rule: &domain.PricingRule{
				Method:                domain.CalcPerUnit,
				BasePrice:             d("100"),
				WeekendMultiplier:     d("1.2"),
				MemberDiscountPercent: d("10"),
			},
			quantity: d("2"),
			mods:     domain.PriceModifiers{Weekend: true, IsMember: true},
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("200"),
				AdjustedAmount: d("240"),
				DiscountAmount: d("24"),
				Subtotal:       d("216"),
				TaxAmount:      d("0"),
				Total:          d("216"),
			},
		},
		{
			name: "Unflagged multiplier has no effect",
			rule: &domain.PricingRule{
				Method:            domain.CalcPerUnit,
				BasePrice:         d("100"),
				WeekendMultiplier: d("1.2"),
				NightMultiplier:   d("1"),
			},
			quantity: d("2"),
			mods:     domain.PriceModifiers{Night: true},
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("200"),
				AdjustedAmount: d("200"),
				DiscountAmount: d("0"),
				Subtotal:       d("200"),
				TaxAmount:      d("0"),
				Total:          d("200"),
			},
		},
		{
			name: "Explicit zero multiplier is applied as written",
			rule: &domain.PricingRule{
				Method:          domain.CalcPerUnit,
				BasePrice:       d("100"),
				NightMultiplier: d("0"),
			},
			quantity: d("2"),
			mods:     domain.PriceModifiers{Night: true},
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("200"),
				AdjustedAmount: d("0"),
				DiscountAmount: d("0"),
				Subtotal:       d("0"),
				TaxAmount:      d("0"),
				Total:          d("0"),
			},
		},
		{
			name: "Minimum charge floor",
			rule: &domain.PricingRule{
				Method:        domain.CalcPerUnit,
				BasePrice:     d("10"),
				MinimumCharge: d("25"),
			},
			quantity: d("1"),
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("25"),
				AdjustedAmount: d("25"),
				DiscountAmount: d("0"),
				Subtotal:       d("25"),
				TaxAmount:      d("0"),
				Total:          d("25"),
			},
		},
		{
			name: "Bulk discount picks highest reached threshold",
			rule: &domain.PricingRule{
				Method:    domain.CalcPerUnit,
				BasePrice: d("10"),
				BulkDiscountTiers: []domain.BulkDiscountTier{
					{MinUnits: d("10"), Percent: d("5")},
					{MinUnits: d("20"), Percent: d("10")},
				},
			},
			quantity: d("20"),
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("200"),
				AdjustedAmount: d("200"),
				DiscountAmount: d("20"),
				Subtotal:       d("180"),
				TaxAmount:      d("0"),
				Total:          d("180"),
			},
		},
		{
			name: "Exclusive tax added on top",
			rule: &domain.PricingRule{
				Method:    domain.CalcFlat,
				BasePrice: d("100"),
				TaxRate:   d("10"),
			},
			quantity: d("1"),
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("100"),
				AdjustedAmount: d("100"),
				DiscountAmount: d("0"),
				Subtotal:       d("100"),
				TaxAmount:      d("10"),
				Total:          d("110"),
			},
		},
		{
			name: "Inclusive tax carved out of subtotal",
			rule: &domain.PricingRule{
				Method:       domain.CalcFlat,
				BasePrice:    d("110"),
				TaxRate:      d("10"),
				TaxInclusive: true,
			},
			quantity: d("1"),
			expected: &domain.PriceBreakdown{
				BaseAmount:     d("110"),
				AdjustedAmount: d("110"),
				DiscountAmount: d("0"),
				Subtotal:       d("110"),
				TaxAmount:      d("10"),
				Total:          d("110"),
			},
		},
		{
			name: "Zero quantity rejected",
			rule: &domain.PricingRule{
				Method:    domain.CalcPerUnit,
				BasePrice: d("100"),
			},
			quantity: d("0"),
			wantErr:  ErrInvalidQuantity,
		},
		{
			name: "Unknown calculation method",
			rule: &domain.PricingRule{
				Method:    domain.CalculationMethod("subscription"),
				BasePrice: d("100"),
			},
			quantity: d("1"),
			wantErr:  ErrUnknownMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown, err := Calculate(tt.rule, tt.quantity, tt.mods)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, breakdown)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.expected.BaseAmount.Equal(breakdown.BaseAmount), "base: want %s got %s", tt.expected.BaseAmount, breakdown.BaseAmount)
			assert.True(t, tt.expected.AdjustedAmount.Equal(breakdown.AdjustedAmount), "adjusted: want %s got %s", tt.expected.AdjustedAmount, breakdown.AdjustedAmount)
			assert.True(t, tt.expected.DiscountAmount.Equal(breakdown.DiscountAmount), "discount: want %s got %s", tt.expected.DiscountAmount, breakdown.DiscountAmount)
			assert.True(t, tt.expected.Subtotal.Equal(breakdown.Subtotal), "subtotal: want %s got %s", tt.expected.Subtotal, breakdown.Subtotal)
			assert.True(t, tt.expected.TaxAmount.Equal(breakdown.TaxAmount), "tax: want %s got %s", tt.expected.TaxAmount, breakdown.TaxAmount)
			assert.True(t, tt.expected.Total.Equal(breakdown.Total), "total: want %s got %s", tt.expected.Total, breakdown.Total)
		})
	}
}

func TestQuote(t *testing.T) {
	service, repo := NewMock(t)
	now := time.Now()

	tests := []struct {
		name          string
		prepareMock   func()
		expectedTotal decimal.Decimal
		expectedError error
	}{
		{
			name: "Resolves rule and prices quantity",
			prepareMock: func() {
				repo.EXPECT().FindApplicable(gomock.Any(), 1, "aircraft_rental", nil, now).Return(&domain.PricingRule{
					Method:    domain.CalcPerUnit,
					BasePrice: d("100"),
				}, nil)
			},
			expectedTotal: d("250"),
		},
		{
			name: "No applicable rule",
			prepareMock: func() {
				repo.EXPECT().FindApplicable(gomock.Any(), 1, "aircraft_rental", nil, now).Return(nil, nil)
			},
			expectedError: ErrPricingRuleNotFound,
		},
		{
			name: "Repository error",
			prepareMock: func() {
				repo.EXPECT().FindApplicable(gomock.Any(), 1, "aircraft_rental", nil, now).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			breakdown, err := service.Quote(context.Background(), 1, "aircraft_rental", nil, d("2.5"), now, domain.PriceModifiers{})
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.expectedTotal.Equal(breakdown.Total))
		})
	}
}

func TestCreateRule(t *testing.T) {
	service, repo := NewMock(t)

	t.Run("Omitted multipliers default to one", func(t *testing.T) {
		rule := &domain.PricingRule{OrganizationID: 1, ChargeType: "instruction", Method: domain.CalcPerUnit, BasePrice: d("60"), PeakMultiplier: d("1.5")}
		repo.EXPECT().Create(gomock.Any(), rule).Return(rule, nil)

		created, err := service.CreateRule(context.Background(), rule)
		assert.NoError(t, err)
		assert.True(t, created.WeekendMultiplier.Equal(d("1")))
		assert.True(t, created.HolidayMultiplier.Equal(d("1")))
		assert.True(t, created.NightMultiplier.Equal(d("1")))
		assert.True(t, created.PeakMultiplier.Equal(d("1.5")))
	})

	t.Run("Negative multiplier rejected", func(t *testing.T) {
		rule := &domain.PricingRule{OrganizationID: 1, ChargeType: "instruction", Method: domain.CalcPerUnit, BasePrice: d("60"), NightMultiplier: d("-0.5")}

		created, err := service.CreateRule(context.Background(), rule)
		assert.ErrorIs(t, err, ErrInvalidMultiplier)
		assert.Nil(t, created)
	})
}
