package paymentservice

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/gateway"
)

type GatewayLogRepo interface {
	Create(ctx context.Context, entry *domain.GatewayLog) error
	FindSucceeded(ctx context.Context, idempotencyKey string) (*domain.GatewayLog, error)
}

type Ledger interface {
	Payment(ctx context.Context, accountID int, amount decimal.Decimal, description, reference string) (*domain.Transaction, error)
}

type Journal interface {
	GetByNumber(ctx context.Context, number string) (*domain.Transaction, error)
	FindByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	Reverse(ctx context.Context, transactionID int, reason string) (*domain.Transaction, error)
}

var ErrInvalidAmount = errors.New("amount must be positive")

// Service orchestrates gateway charges around the ledger. Every gateway
// attempt leaves an audit row whether or not it succeeded; the ledger
// entry is written only after the gateway confirms, so the absence of a
// transaction is itself the signal that a charge did not affect the
// balance.
type Service struct {
	gw      gateway.Gateway
	logRepo GatewayLogRepo
	ledger  Ledger
	journal Journal
}

func New(gw gateway.Gateway, logRepo GatewayLogRepo, ledger Ledger, journal Journal) *Service {
	return &Service{
		gw:      gw,
		logRepo: logRepo,
		ledger:  ledger,
		journal: journal,
	}
}

type ChargeResult struct {
	GatewayTxnID string
	Transaction  *domain.Transaction
}

// ChargePaymentMethod charges the stored payment method and credits the
// account on confirmation. An empty idempotency key gets a generated
// one; a repeated key returns the recorded outcome without re-charging.
func (s *Service) ChargePaymentMethod(ctx context.Context, accountID int, customerRef, methodRef string, amount decimal.Decimal, currency, idempotencyKey string) (*ChargeResult, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	prior, err := s.logRepo.FindSucceeded(ctx, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		zap.L().Info("replaying idempotent charge",
			zap.String("idempotency_key", idempotencyKey),
			zap.String("gateway_txn_id", prior.GatewayTxnID),
		)
		return s.replaySucceeded(ctx, accountID, prior)
	}

	res, gwErr := s.gw.Charge(ctx, gateway.ChargeRequest{
		CustomerRef:    customerRef,
		MethodRef:      methodRef,
		Amount:         amount,
		Currency:       currency,
		IdempotencyKey: idempotencyKey,
	})

	// The audit row is written regardless of outcome and outside the
	// ledger transaction's atomic unit.
	entry := &domain.GatewayLog{
		AccountID:      accountID,
		Operation:      "charge",
		IdempotencyKey: idempotencyKey,
		Amount:         amount,
		Currency:       currency,
	}
	switch {
	case gwErr == nil:
		entry.Status = domain.GatewaySucceeded
		entry.GatewayTxnID = res.GatewayTxnID
	case errors.Is(gwErr, gateway.ErrPaymentFailed):
		entry.Status = domain.GatewayFailed
		entry.Detail = gwErr.Error()
	default:
		entry.Status = domain.GatewayErrored
		entry.Detail = gwErr.Error()
	}
	if logErr := s.logRepo.Create(ctx, entry); logErr != nil {
		zap.L().Error("failed to write gateway audit log", zap.Error(logErr))
	}

	if gwErr != nil {
		return nil, gwErr
	}

	txn, err := s.ledger.Payment(ctx, accountID, amount, "card payment", res.GatewayTxnID)
	if err != nil {
		return nil, err
	}
	return &ChargeResult{
		GatewayTxnID: res.GatewayTxnID,
		Transaction:  txn,
	}, nil
}

// replaySucceeded returns the recorded outcome of a charge the gateway
// already captured. A prior run may have crashed between the gateway
// confirmation and the ledger write; the missing payment entry is
// created here, so replaying the key is the recovery path.
func (s *Service) replaySucceeded(ctx context.Context, accountID int, prior *domain.GatewayLog) (*ChargeResult, error) {
	txn, err := s.journal.FindByReference(ctx, prior.GatewayTxnID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		zap.L().Warn("completing ledger write lost after gateway capture",
			zap.String("gateway_txn_id", prior.GatewayTxnID),
		)
		txn, err = s.ledger.Payment(ctx, accountID, prior.Amount, "card payment", prior.GatewayTxnID)
		if err != nil {
			return nil, err
		}
	}
	return &ChargeResult{
		GatewayTxnID: prior.GatewayTxnID,
		Transaction:  txn,
	}, nil
}

// RefundPayment refunds the gateway charge behind a ledger payment and
// reverses the payment transaction.
func (s *Service) RefundPayment(ctx context.Context, accountID int, transactionNumber, reason string) (*domain.Transaction, error) {
	txn, err := s.journal.GetByNumber(ctx, transactionNumber)
	if err != nil {
		return nil, err
	}

	res, gwErr := s.gw.Refund(ctx, txn.Reference, txn.Amount)

	entry := &domain.GatewayLog{
		AccountID:      accountID,
		Operation:      "refund",
		IdempotencyKey: uuid.NewString(),
		Amount:         txn.Amount,
		Currency:       "usd",
	}
	switch {
	case gwErr == nil:
		entry.Status = domain.GatewaySucceeded
		entry.GatewayTxnID = res.RefundID
	case errors.Is(gwErr, gateway.ErrPaymentFailed):
		entry.Status = domain.GatewayFailed
		entry.Detail = gwErr.Error()
	default:
		entry.Status = domain.GatewayErrored
		entry.Detail = gwErr.Error()
	}
	if logErr := s.logRepo.Create(ctx, entry); logErr != nil {
		zap.L().Error("failed to write gateway audit log", zap.Error(logErr))
	}

	if gwErr != nil {
		return nil, gwErr
	}
	return s.journal.Reverse(ctx, txn.ID, reason)
}
