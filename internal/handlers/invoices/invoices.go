package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/dto"
	"github.com/avialab/flightledger/internal/service/invoiceservice"
	"github.com/avialab/flightledger/internal/service/ledgerservice"
	"github.com/avialab/flightledger/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, accountID int, dueDate *time.Time) (*domain.Invoice, error)
	Get(ctx context.Context, id int) (*domain.Invoice, error)
	ListByAccount(ctx context.Context, accountID int) ([]domain.Invoice, error)
	AddLineItem(ctx context.Context, invoiceID int, item domain.LineItem) (*domain.Invoice, error)
	Finalize(ctx context.Context, invoiceID int) (*domain.Invoice, error)
	Send(ctx context.Context, invoiceID int) (*domain.Invoice, error)
	MarkViewed(ctx context.Context, invoiceID int) (*domain.Invoice, error)
	RecordPayment(ctx context.Context, invoiceID int, amount decimal.Decimal) (*domain.Invoice, error)
	Void(ctx context.Context, invoiceID int, reason string) (*domain.Invoice, error)
}

type InvoiceHandler struct {
	invoiceService Service
}

func New(invoiceService Service) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func invoiceToDTO(inv *domain.Invoice) dto.InvoiceResponseDTO {
	items := make([]dto.LineItemDTO, len(inv.LineItems))
	for i, li := range inv.LineItems {
		items[i] = dto.LineItemDTO{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
			TaxAmount:   li.TaxAmount,
		}
	}
	return dto.InvoiceResponseDTO{
		ID:          inv.ID,
		Number:      inv.Number,
		AccountID:   inv.AccountID,
		Status:      string(inv.Status),
		LineItems:   items,
		Subtotal:    inv.Subtotal,
		TaxAmount:   inv.TaxAmount,
		TotalAmount: inv.TotalAmount,
		AmountPaid:  inv.AmountPaid,
		AmountDue:   inv.AmountDue(),
		DueDate:     inv.DueDate,
		IssuedAt:    inv.IssuedAt,
		CreatedAt:   inv.CreatedAt,
	}
}

func respondInvoiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invoiceservice.ErrInvoiceNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, invoiceservice.ErrInvalidStateTransition),
		errors.Is(err, invoiceservice.ErrNoLineItems):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, invoiceservice.ErrInvalidAmount):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ledgerservice.ErrAccountSuspended),
		errors.Is(err, ledgerservice.ErrAccountClosed):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func invoiceID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// CreateInvoice godoc
//
//	@Summary		Create a draft invoice
//	@Tags			Invoices
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateInvoiceRequestDTO	true	"Invoice details"
//	@Success		201		{object}	dto.InvoiceResponseDTO		"Created invoice"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Router			/api/invoices [post]
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inv, err := h.invoiceService.Create(r.Context(), req.AccountID, req.DueDate)
	if err != nil {
		respondInvoiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, invoiceToDTO(inv))
}

// GetInvoice godoc
//
//	@Summary	Get an invoice
//	@Tags		Invoices
//	@Produce	json
//	@Param		id	path		int						true	"Invoice ID"
//	@Success	200	{object}	dto.InvoiceResponseDTO	"Invoice"
//	@Failure	404	{object}	utils.Response			"Invoice not found"
//	@Router		/api/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	inv, err := h.invoiceService.Get(r.Context(), id)
	if err != nil {
		respondInvoiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, invoiceToDTO(inv))
}

// ListInvoices godoc
//
//	@Summary	List invoices for an account
//	@Tags		Invoices
//	@Produce	json
//	@Param		account_id	query		int						true	"Account ID"
//	@Success	200			{array}		dto.InvoiceResponseDTO	"Invoices, newest first"
//	@Success	204			{object}	utils.Response			"No invoices"
//	@Router		/api/invoices [get]
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.Atoi(r.URL.Query().Get("account_id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account_id")
		return
	}
	invs, err := h.invoiceService.ListByAccount(r.Context(), accountID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch invoices")
		return
	}
	if len(invs) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Invoices not found")
		return
	}
	response := make([]dto.InvoiceResponseDTO, len(invs))
	for i, inv := range invs {
		response[i] = invoiceToDTO(&inv)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// AddLineItem godoc
//
//	@Summary		Add a line item to a draft invoice
//	@Description	Only draft invoices accept line items; totals are recomputed on every change.
//	@Tags			Invoices
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Invoice ID"
//	@Param			request	body		dto.AddLineItemRequestDTO	true	"Line item"
//	@Success		200		{object}	dto.InvoiceResponseDTO		"Updated invoice"
//	@Failure		409		{object}	utils.Response				"Invoice is not a draft"
//	@Router			/api/invoices/{id}/items [post]
func (h *InvoiceHandler) AddLineItem(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	var req dto.AddLineItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inv, err := h.invoiceService.AddLineItem(r.Context(), id, domain.LineItem{
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		TaxAmount:   req.TaxAmount,
	})
	if err != nil {
		respondInvoiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, invoiceToDTO(inv))
}

// Finalize godoc
//
//	@Summary	Finalize a draft invoice
//	@Tags		Invoices
//	@Produce	json
//	@Param		id	path		int						true	"Invoice ID"
//	@Success	200	{object}	dto.InvoiceResponseDTO	"Finalized invoice"
//	@Failure	409	{object}	utils.Response			"No line items or not a draft"
//	@Router		/api/invoices/{id}/finalize [post]
func (h *InvoiceHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.invoiceService.Finalize)
}

// Send godoc
//
//	@Summary	Mark an invoice as sent
//	@Tags		Invoices
//	@Produce	json
//	@Param		id	path		int						true	"Invoice ID"
//	@Success	200	{object}	dto.InvoiceResponseDTO	"Sent invoice"
//	@Router		/api/invoices/{id}/send [post]
func (h *InvoiceHandler) Send(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.invoiceService.Send)
}

// MarkViewed godoc
//
//	@Summary	Mark an invoice as viewed
//	@Tags		Invoices
//	@Produce	json
//	@Param		id	path		int						true	"Invoice ID"
//	@Success	200	{object}	dto.InvoiceResponseDTO	"Viewed invoice"
//	@Router		/api/invoices/{id}/viewed [post]
func (h *InvoiceHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.invoiceService.MarkViewed)
}

func (h *InvoiceHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, invoiceID int) (*domain.Invoice, error)) {
	id, err := invoiceID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	inv, err := fn(r.Context(), id)
	if err != nil {
		respondInvoiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, invoiceToDTO(inv))
}

// RecordPayment godoc
//
//	@Summary		Record a payment against an invoice
//	@Description	Applies the payment to the invoice and credits the account ledger in the same atomic unit.
//	@Tags			Invoices
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Invoice ID"
//	@Param			request	body		dto.RecordPaymentRequestDTO	true	"Payment amount"
//	@Success		200		{object}	dto.InvoiceResponseDTO		"Updated invoice"
//	@Failure		409		{object}	utils.Response				"Invoice does not accept payments"
//	@Router			/api/invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	var req dto.RecordPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inv, err := h.invoiceService.RecordPayment(r.Context(), id, req.Amount)
	if err != nil {
		respondInvoiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, invoiceToDTO(inv))
}

// Void godoc
//
//	@Summary	Void an invoice
//	@Tags		Invoices
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Invoice ID"
//	@Param		request	body		dto.VoidInvoiceRequestDTO	true	"Void reason"
//	@Success	200		{object}	dto.InvoiceResponseDTO	"Voided invoice"
//	@Failure	409		{object}	utils.Response			"Invoice already terminal"
//	@Router		/api/invoices/{id}/void [post]
func (h *InvoiceHandler) Void(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	var req dto.VoidInvoiceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inv, err := h.invoiceService.Void(r.Context(), id, req.Reason)
	if err != nil {
		respondInvoiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, invoiceToDTO(inv))
}
