package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type GatewayLogStatus string

const (
	GatewaySucceeded GatewayLogStatus = "succeeded"
	GatewayFailed    GatewayLogStatus = "failed"
	GatewayErrored   GatewayLogStatus = "errored"
)

// GatewayLog records every payment-gateway attempt for audit, whether or
// not a ledger transaction was created for it.
type GatewayLog struct {
	ID             int              `db:"id"`
	AccountID      int              `db:"account_id"`
	Operation      string           `db:"operation"`
	IdempotencyKey string           `db:"idempotency_key"`
	Amount         decimal.Decimal  `db:"amount"`
	Currency       string           `db:"currency"`
	GatewayTxnID   string           `db:"gateway_txn_id"`
	Status         GatewayLogStatus `db:"status"`
	Detail         string           `db:"detail"`
	CreatedAt      time.Time        `db:"created_at"`
}
