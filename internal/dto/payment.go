package dto

import "github.com/shopspring/decimal"

type GatewayChargeRequestDTO struct {
	CustomerRef    string          `json:"customer_ref"`
	MethodRef      string          `json:"method_ref"`
	CardNumber     string          `json:"card_number,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

type GatewayChargeResponseDTO struct {
	GatewayTxnID      string `json:"gateway_txn_id"`
	TransactionNumber string `json:"transaction_number,omitempty"`
}

type RefundRequestDTO struct {
	TransactionNumber string `json:"transaction_number"`
	Reason            string `json:"reason"`
}
