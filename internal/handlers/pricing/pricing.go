package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/dto"
	"github.com/avialab/flightledger/internal/service/pricingservice"
	"github.com/avialab/flightledger/pkg/utils"
)

type Service interface {
	Quote(ctx context.Context, orgID int, chargeType string, targetID *int, quantity decimal.Decimal, at time.Time, mods domain.PriceModifiers) (*domain.PriceBreakdown, error)
	CreateRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
}

type PricingHandler struct {
	pricingService Service
}

func New(pricingService Service) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// Quote godoc
//
//	@Summary		Price a charge
//	@Description	Resolves the highest-priority effective rule and returns the full breakdown without persisting anything.
//	@Tags			Pricing
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.QuoteRequestDTO		true	"Quote parameters"
//	@Success		200		{object}	dto.QuoteResponseDTO	"Price breakdown"
//	@Failure		404		{object}	utils.Response			"No applicable rule"
//	@Failure		422		{object}	utils.Response			"Invalid quantity"
//	@Router			/api/pricing/quote [post]
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	at := time.Now()
	if req.At != nil {
		at = *req.At
	}
	breakdown, err := h.pricingService.Quote(r.Context(), req.OrganizationID, req.ChargeType, req.TargetID, req.Quantity, at, domain.PriceModifiers{
		Weekend:  req.Weekend,
		Holiday:  req.Holiday,
		Night:    req.Night,
		Peak:     req.Peak,
		IsMember: req.IsMember,
	})
	if err != nil {
		switch {
		case errors.Is(err, pricingservice.ErrPricingRuleNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, pricingservice.ErrInvalidQuantity),
			errors.Is(err, pricingservice.ErrUnknownMethod):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.QuoteResponseDTO{
		BaseAmount:     breakdown.BaseAmount,
		AdjustedAmount: breakdown.AdjustedAmount,
		DiscountAmount: breakdown.DiscountAmount,
		Subtotal:       breakdown.Subtotal,
		TaxAmount:      breakdown.TaxAmount,
		Total:          breakdown.Total,
	})
}

// CreateRule godoc
//
//	@Summary	Create a pricing rule
//	@Tags		Pricing
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CreateRuleRequestDTO	true	"Rule definition"
//	@Success	201		{object}	dto.CreateRuleResponseDTO	"Created rule"
//	@Failure	400		{object}	utils.Response				"Invalid request body"
//	@Failure	422		{object}	utils.Response				"Invalid multiplier"
//	@Router		/api/pricing/rules [post]
func (h *PricingHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRuleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rule := &domain.PricingRule{
		OrganizationID:        req.OrganizationID,
		ChargeType:            req.ChargeType,
		TargetID:              req.TargetID,
		Priority:              req.Priority,
		EffectiveFrom:         req.EffectiveFrom,
		EffectiveTo:           req.EffectiveTo,
		BasePrice:             req.BasePrice,
		Unit:                  req.Unit,
		Method:                domain.CalculationMethod(req.CalculationMethod),
		BlockSize:             req.BlockSize,
		MinimumUnits:          req.MinimumUnits,
		MinimumCharge:         req.MinimumCharge,
		WeekendMultiplier:     req.WeekendMultiplier,
		HolidayMultiplier:     req.HolidayMultiplier,
		NightMultiplier:       req.NightMultiplier,
		PeakMultiplier:        req.PeakMultiplier,
		MemberDiscountPercent: req.MemberDiscountPercent,
		TaxRate:               req.TaxRate,
		TaxInclusive:          req.TaxInclusive,
	}
	for _, t := range req.Tiers {
		rule.Tiers = append(rule.Tiers, domain.PriceTier{From: t.From, To: t.To, Price: t.Price})
	}
	for _, t := range req.BulkDiscountTiers {
		rule.BulkDiscountTiers = append(rule.BulkDiscountTiers, domain.BulkDiscountTier{MinUnits: t.MinUnits, Percent: t.Percent})
	}
	created, err := h.pricingService.CreateRule(r.Context(), rule)
	if err != nil {
		if errors.Is(err, pricingservice.ErrInvalidMultiplier) {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create rule")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.CreateRuleResponseDTO{ID: created.ID, CreateRuleRequestDTO: req})
}
