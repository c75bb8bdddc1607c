package accountrepo

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

const accountColumns = `id, organization_id, owner_id, account_number, balance, credit_limit, pending_charges, status, created_at, updated_at`

func (r *Repository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.ID, &acc.OrganizationID, &acc.OwnerID, &acc.AccountNumber,
		&acc.Balance, &acc.CreditLimit, &acc.PendingCharges, &acc.Status,
		&acc.CreatedAt, &acc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan account row", zap.Error(err))
		return nil, err
	}
	return &acc, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Account, error) {
	query := `
        SELECT ` + accountColumns + `
        FROM accounts
        WHERE id = $1
    `
	return r.scanAccount(r.db.QueryRow(ctx, query, id))
}

// GetForUpdate takes the row-level exclusive lock serializing all
// balance mutations for the account. Must run inside a transaction.
func (r *Repository) GetForUpdate(ctx context.Context, id int) (*domain.Account, error) {
	query := `
        SELECT ` + accountColumns + `
        FROM accounts
        WHERE id = $1
        FOR UPDATE
    `
	return r.scanAccount(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) Create(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	query := `
        INSERT INTO accounts (organization_id, owner_id, account_number, balance, credit_limit, pending_charges, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		acc.OrganizationID, acc.OwnerID, acc.AccountNumber,
		acc.Balance, acc.CreditLimit, acc.PendingCharges, acc.Status,
	).Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		zap.L().Error("can't create account", zap.Error(err))
		return nil, err
	}
	return acc, nil
}

// UpdateBalance writes the new balance and pending charges. Callers hold
// the FOR UPDATE lock on the row.
func (r *Repository) UpdateBalance(ctx context.Context, acc *domain.Account) error {
	query := `
        UPDATE accounts
        SET balance = $1, pending_charges = $2, updated_at = now()
        WHERE id = $3
    `
	if _, err := r.db.Exec(ctx, query, acc.Balance, acc.PendingCharges, acc.ID); err != nil {
		zap.L().Error("can't update account balance", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status domain.AccountStatus) error {
	query := `
        UPDATE accounts
        SET status = $1, updated_at = now()
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, status, id); err != nil {
		zap.L().Error("can't update account status", zap.Error(err))
		return err
	}
	return nil
}
