package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/dto"
	"github.com/avialab/flightledger/internal/gateway"
	"github.com/avialab/flightledger/internal/service/journalservice"
	"github.com/avialab/flightledger/internal/service/ledgerservice"
	"github.com/avialab/flightledger/internal/service/paymentservice"
	"github.com/avialab/flightledger/pkg/utils"
	"github.com/avialab/flightledger/pkg/validate"
)

type Service interface {
	ChargePaymentMethod(ctx context.Context, accountID int, customerRef, methodRef string, amount decimal.Decimal, currency, idempotencyKey string) (*paymentservice.ChargeResult, error)
	RefundPayment(ctx context.Context, accountID int, transactionNumber, reason string) (*domain.Transaction, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func accountID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// Charge godoc
//
//	@Summary		Charge a stored payment method
//	@Description	Calls the payment gateway, records an audit row for every attempt and credits the account on success. Retries with the same idempotency key replay the original result.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Account ID"
//	@Param			request	body		dto.GatewayChargeRequestDTO		true	"Charge details"
//	@Success		200		{object}	dto.GatewayChargeResponseDTO	"Gateway result"
//	@Failure		402		{object}	utils.Response					"Payment declined"
//	@Failure		422		{object}	utils.Response					"Invalid card number"
//	@Failure		502		{object}	utils.Response					"Gateway unavailable"
//	@Router			/api/accounts/{id}/payments [post]
func (h *PaymentHandler) Charge(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	var req dto.GatewayChargeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CardNumber != "" && !validate.IsLuhn(req.CardNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "invalid card number")
		return
	}
	result, err := h.paymentService.ChargePaymentMethod(r.Context(), id, req.CustomerRef, req.MethodRef, req.Amount, req.Currency, req.IdempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrPaymentFailed):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, gateway.ErrPaymentGateway):
			utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		case errors.Is(err, ledgerservice.ErrAccountNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, paymentservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	response := dto.GatewayChargeResponseDTO{GatewayTxnID: result.GatewayTxnID}
	if result.Transaction != nil {
		response.TransactionNumber = result.Transaction.Number
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Refund godoc
//
//	@Summary		Refund a gateway payment
//	@Description	Refunds the charge at the gateway, then reverses the matching ledger entry.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Account ID"
//	@Param			request	body		dto.RefundRequestDTO	true	"Refund details"
//	@Success		200		{object}	dto.GatewayChargeResponseDTO	"Reversal entry reference"
//	@Failure		409		{object}	utils.Response			"Transaction not reversible"
//	@Failure		502		{object}	utils.Response			"Gateway unavailable"
//	@Router			/api/accounts/{id}/refunds [post]
func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	var req dto.RefundRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reversal, err := h.paymentService.RefundPayment(r.Context(), id, req.TransactionNumber, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, journalservice.ErrTransactionNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, journalservice.ErrTransactionNotReversible):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, gateway.ErrPaymentGateway):
			utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.GatewayChargeResponseDTO{TransactionNumber: reversal.Number})
}
