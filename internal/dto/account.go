package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateAccountRequestDTO struct {
	OrganizationID int             `json:"organization_id"`
	OwnerID        int             `json:"owner_id"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
}

type AccountResponseDTO struct {
	ID               int             `json:"id"`
	AccountNumber    string          `json:"account_number"`
	Balance          decimal.Decimal `json:"balance"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	PendingCharges   decimal.Decimal `json:"pending_charges"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
}

type ChargeRequestDTO struct {
	Amount      decimal.Decimal `json:"amount"`
	AllowCredit bool            `json:"allow_credit"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
}

type CreditRequestDTO struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
}

type TransferRequestDTO struct {
	ToAccountID int             `json:"to_account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference"`
}

type HoldRequestDTO struct {
	Amount decimal.Decimal `json:"amount"`
}

type TransactionResponseDTO struct {
	ID            int             `json:"id"`
	Number        string          `json:"transaction_number"`
	Type          string          `json:"type"`
	Subtype       string          `json:"subtype,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	BalanceImpact decimal.Decimal `json:"balance_impact"`
	Reversed      bool            `json:"reversed"`
	Status        string          `json:"status"`
	Description   string          `json:"description,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ReverseRequestDTO struct {
	Reason string `json:"reason"`
}
