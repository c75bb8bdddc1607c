package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionCharge     TransactionType = "charge"
	TransactionPayment    TransactionType = "payment"
	TransactionRefund     TransactionType = "refund"
	TransactionCredit     TransactionType = "credit"
	TransactionAdjustment TransactionType = "adjustment"
	TransactionTransfer   TransactionType = "transfer"
	TransactionReversal   TransactionType = "reversal"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionReversed  TransactionStatus = "reversed"
)

// Transaction is an immutable journal entry. Only the reversed flag and
// reversal_id back-reference change after insert.
type Transaction struct {
	ID                    int               `db:"id"`
	AccountID             int               `db:"account_id"`
	Number                string            `db:"transaction_number"`
	Type                  TransactionType   `db:"type"`
	Subtype               string            `db:"subtype"`
	Amount                decimal.Decimal   `db:"amount"`
	BalanceBefore         decimal.Decimal   `db:"balance_before"`
	BalanceAfter          decimal.Decimal   `db:"balance_after"`
	BalanceImpact         decimal.Decimal   `db:"balance_impact"`
	OriginalTransactionID *int              `db:"original_transaction_id"`
	ReversalID            *int              `db:"reversal_id"`
	Reversed              bool              `db:"reversed"`
	Status                TransactionStatus `db:"status"`
	Description           string            `db:"description"`
	Reference             string            `db:"reference"`
	CreatedAt             time.Time         `db:"created_at"`
}

func (t *Transaction) IsReversible() bool {
	return t.Status == TransactionCompleted && !t.Reversed
}
