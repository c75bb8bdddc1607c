package accounts

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
	"github.com/avialab/flightledger/internal/service/journalservice"
	"github.com/avialab/flightledger/internal/service/ledgerservice"
	"github.com/avialab/flightledger/pkg/utils"
)

type LedgerService interface {
	CreateAccount(ctx context.Context, orgID, ownerID int, creditLimit decimal.Decimal) (*domain.Account, error)
	GetAccount(ctx context.Context, id int) (*domain.Account, error)
	Charge(ctx context.Context, accountID int, amount decimal.Decimal, allowCredit bool, description, reference string) (*domain.Transaction, error)
	Credit(ctx context.Context, accountID int, amount decimal.Decimal, description, reference string) (*domain.Transaction, error)
	Transfer(ctx context.Context, fromID, toID int, amount decimal.Decimal, reference string) (*domain.Transaction, *domain.Transaction, error)
	ReservePending(ctx context.Context, accountID int, amount decimal.Decimal) error
	ReleasePending(ctx context.Context, accountID int, amount decimal.Decimal) error
	SuspendAccount(ctx context.Context, accountID int) error
	ReactivateAccount(ctx context.Context, accountID int) error
	CloseAccount(ctx context.Context, accountID int) error
	ListTransactions(ctx context.Context, accountID int) ([]domain.Transaction, error)
}

type JournalService interface {
	Reverse(ctx context.Context, transactionID int, reason string) (*domain.Transaction, error)
}

type AccountHandler struct {
	ledgerService  LedgerService
	journalService JournalService
}

func New(ledgerService LedgerService, journalService JournalService) *AccountHandler {
	return &AccountHandler{
		ledgerService:  ledgerService,
		journalService: journalService,
	}
}

func accountToDTO(acc *domain.Account) dto.AccountResponseDTO {
	return dto.AccountResponseDTO{
		ID:               acc.ID,
		AccountNumber:    acc.AccountNumber,
		Balance:          acc.Balance,
		CreditLimit:      acc.CreditLimit,
		PendingCharges:   acc.PendingCharges,
		AvailableBalance: acc.AvailableBalance(),
		Status:           string(acc.Status),
		CreatedAt:        acc.CreatedAt,
	}
}

func transactionToDTO(txn *domain.Transaction) dto.TransactionResponseDTO {
	return dto.TransactionResponseDTO{
		ID:            txn.ID,
		Number:        txn.Number,
		Type:          string(txn.Type),
		Subtype:       txn.Subtype,
		Amount:        txn.Amount,
		BalanceBefore: txn.BalanceBefore,
		BalanceAfter:  txn.BalanceAfter,
		BalanceImpact: txn.BalanceImpact,
		Reversed:      txn.Reversed,
		Status:        string(txn.Status),
		Description:   txn.Description,
		Reference:     txn.Reference,
		CreatedAt:     txn.CreatedAt,
	}
}

func accountID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgerservice.ErrAccountNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledgerservice.ErrInsufficientBalance):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, ledgerservice.ErrAccountSuspended),
		errors.Is(err, ledgerservice.ErrAccountClosed),
		errors.Is(err, ledgerservice.ErrOutstandingBalance):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledgerservice.ErrInvalidAmount),
		errors.Is(err, ledgerservice.ErrSameAccount):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// CreateAccount godoc
//
//	@Summary		Open a new finance account
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateAccountRequestDTO	true	"Account details"
//	@Success		201		{object}	dto.AccountResponseDTO		"Created account"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	acc, err := h.ledgerService.CreateAccount(r.Context(), req.OrganizationID, req.OwnerID, req.CreditLimit)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, accountToDTO(acc))
}

// GetAccount godoc
//
//	@Summary		Get an account with its balance
//	@Tags			Accounts
//	@Produce		json
//	@Param			id	path		int						true	"Account ID"
//	@Success		200	{object}	dto.AccountResponseDTO	"Account"
//	@Failure		404	{object}	utils.Response			"Account not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/accounts/{id} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	acc, err := h.ledgerService.GetAccount(r.Context(), id)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, accountToDTO(acc))
}

// Charge godoc
//
//	@Summary		Charge an account
//	@Description	Debits the account inside one atomic unit with its journal entry.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Account ID"
//	@Param			request	body		dto.ChargeRequestDTO		true	"Charge details"
//	@Success		200		{object}	dto.TransactionResponseDTO	"Journal entry"
//	@Failure		402		{object}	utils.Response				"Insufficient balance"
//	@Failure		409		{object}	utils.Response				"Account not active"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/accounts/{id}/charge [post]
func (h *AccountHandler) Charge(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	var req dto.ChargeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	txn, err := h.ledgerService.Charge(r.Context(), id, req.Amount, req.AllowCredit, req.Description, req.Reference)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, transactionToDTO(txn))
}

// Credit godoc
//
//	@Summary		Credit an account
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Account ID"
//	@Param			request	body		dto.CreditRequestDTO		true	"Credit details"
//	@Success		200		{object}	dto.TransactionResponseDTO	"Journal entry"
//	@Failure		409		{object}	utils.Response				"Account closed"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/accounts/{id}/credit [post]
func (h *AccountHandler) Credit(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	var req dto.CreditRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	txn, err := h.ledgerService.Credit(r.Context(), id, req.Amount, req.Description, req.Reference)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, transactionToDTO(txn))
}

// Transfer godoc
//
//	@Summary		Transfer between accounts
//	@Description	Moves funds between two accounts; both rows are locked in a deterministic order.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Source account ID"
//	@Param			request	body		dto.TransferRequestDTO		true	"Transfer details"
//	@Success		200		{array}		dto.TransactionResponseDTO	"Outgoing and incoming entries"
//	@Failure		402		{object}	utils.Response				"Insufficient balance"
//	@Failure		422		{object}	utils.Response				"Same account"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/accounts/{id}/transfer [post]
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	var req dto.TransferRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	out, in, err := h.ledgerService.Transfer(r.Context(), id, req.ToAccountID, req.Amount, req.Reference)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, []dto.TransactionResponseDTO{transactionToDTO(out), transactionToDTO(in)})
}

// Reserve godoc
//
//	@Summary		Place a pending hold
//	@Tags			Accounts
//	@Accept			json
//	@Param			id		path		int					true	"Account ID"
//	@Param			request	body		dto.HoldRequestDTO	true	"Hold amount"
//	@Success		200		{string}	string				"Hold placed"
//	@Failure		402		{object}	utils.Response		"Insufficient available balance"
//	@Router			/api/accounts/{id}/holds [post]
func (h *AccountHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	h.hold(w, r, h.ledgerService.ReservePending)
}

// Release godoc
//
//	@Summary		Release a pending hold
//	@Tags			Accounts
//	@Accept			json
//	@Param			id		path		int					true	"Account ID"
//	@Param			request	body		dto.HoldRequestDTO	true	"Release amount"
//	@Success		200		{string}	string				"Hold released"
//	@Router			/api/accounts/{id}/holds/release [post]
func (h *AccountHandler) Release(w http.ResponseWriter, r *http.Request) {
	h.hold(w, r, h.ledgerService.ReleasePending)
}

func (h *AccountHandler) hold(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, accountID int, amount decimal.Decimal) error) {
	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	var req dto.HoldRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := fn(r.Context(), id, req.Amount); err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "ok")
}

// Suspend godoc
//
//	@Summary	Suspend an account
//	@Tags		Accounts
//	@Param		id	path		int				true	"Account ID"
//	@Success	200	{string}	string			"Suspended"
//	@Failure	409	{object}	utils.Response	"Account not active"
//	@Router		/api/accounts/{id}/suspend [post]
func (h *AccountHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.ledgerService.SuspendAccount)
}

// Reactivate godoc
//
//	@Summary	Reactivate a suspended account
//	@Tags		Accounts
//	@Param		id	path		int		true	"Account ID"
//	@Success	200	{string}	string	"Reactivated"
//	@Router		/api/accounts/{id}/reactivate [post]
func (h *AccountHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.ledgerService.ReactivateAccount)
}

// Close godoc
//
//	@Summary	Close an account
//	@Description	Terminal; requires a non-negative balance. Accounts are never deleted.
//	@Tags		Accounts
//	@Param		id	path		int				true	"Account ID"
//	@Success	200	{string}	string			"Closed"
//	@Failure	409	{object}	utils.Response	"Outstanding balance"
//	@Router		/api/accounts/{id}/close [post]
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.ledgerService.CloseAccount)
}

func (h *AccountHandler) lifecycle(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, accountID int) error) {
	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	if err := fn(r.Context(), id); err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "ok")
}

// GetTransactions godoc
//
//	@Summary	List account transactions
//	@Tags		Accounts
//	@Produce	json
//	@Param		id	path		int							true	"Account ID"
//	@Success	200	{array}		dto.TransactionResponseDTO	"Journal entries, newest first"
//	@Success	204	{object}	utils.Response				"No transactions"
//	@Router		/api/accounts/{id}/transactions [get]
func (h *AccountHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	txns, err := h.ledgerService.ListTransactions(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	if len(txns) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Transactions not found")
		return
	}
	response := make([]dto.TransactionResponseDTO, len(txns))
	for i, txn := range txns {
		response[i] = transactionToDTO(&txn)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ReverseTransaction godoc
//
//	@Summary		Reverse a completed transaction
//	@Description	Creates a linked reversal entry and restores the balance; a transaction can be reversed at most once.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Transaction ID"
//	@Param			request	body		dto.ReverseRequestDTO		true	"Reversal reason"
//	@Success		200		{object}	dto.TransactionResponseDTO	"Reversal entry"
//	@Failure		409		{object}	utils.Response				"Transaction not reversible"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/transactions/{id}/reverse [post]
func (h *AccountHandler) ReverseTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}
	var req dto.ReverseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reversal, err := h.journalService.Reverse(r.Context(), id, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, journalservice.ErrTransactionNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, journalservice.ErrTransactionNotReversible):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, transactionToDTO(reversal))
}
