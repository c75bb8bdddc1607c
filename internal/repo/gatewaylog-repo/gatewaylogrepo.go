package gatewaylogrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, entry *domain.GatewayLog) error {
	query := `
        INSERT INTO gateway_logs (account_id, operation, idempotency_key, amount, currency, gateway_txn_id, status, detail)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		entry.AccountID, entry.Operation, entry.IdempotencyKey,
		entry.Amount, entry.Currency, entry.GatewayTxnID, entry.Status, entry.Detail,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		zap.L().Error("can't save gateway log", zap.Error(err))
		return err
	}
	return nil
}

// FindSucceeded returns the successful attempt for an idempotency key, if
// any. Timed-out callers re-check through this before retrying.
func (r *Repository) FindSucceeded(ctx context.Context, idempotencyKey string) (*domain.GatewayLog, error) {
	query := `
        SELECT id, account_id, operation, idempotency_key, amount, currency, gateway_txn_id, status, detail, created_at
        FROM gateway_logs
        WHERE idempotency_key = $1 AND status = $2
        ORDER BY created_at DESC
        LIMIT 1
    `
	row := r.db.QueryRow(ctx, query, idempotencyKey, domain.GatewaySucceeded)
	var entry domain.GatewayLog
	err := row.Scan(
		&entry.ID, &entry.AccountID, &entry.Operation, &entry.IdempotencyKey,
		&entry.Amount, &entry.Currency, &entry.GatewayTxnID, &entry.Status,
		&entry.Detail, &entry.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get gateway log", zap.Error(err))
		return nil, err
	}
	return &entry, nil
}
