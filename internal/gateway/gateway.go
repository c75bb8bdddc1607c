package gateway

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrPaymentFailed is terminal: the gateway rejected the charge and a
	// retry with the same parameters will not succeed.
	ErrPaymentFailed = errors.New("payment failed")
	// ErrPaymentGateway is transient: the caller may retry with the same
	// idempotency key.
	ErrPaymentGateway = errors.New("payment gateway unavailable")
)

type ChargeRequest struct {
	CustomerRef    string          `json:"customer_ref"`
	MethodRef      string          `json:"method_ref"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	IdempotencyKey string          `json:"-"`
}

type ChargeResult struct {
	GatewayTxnID string `json:"id"`
	Status       string `json:"status"`
}

type RefundResult struct {
	RefundID string `json:"id"`
	Status   string `json:"status"`
}

// Gateway is the abstract payment-processor contract. The concrete
// provider SDK stays behind this seam.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Refund(ctx context.Context, gatewayTxnID string, amount decimal.Decimal) (*RefundResult, error)
}
