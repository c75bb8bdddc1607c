package transactionrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

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

const transactionColumns = `id, account_id, transaction_number, type, subtype, amount, balance_before, balance_after, balance_impact, original_transaction_id, reversal_id, reversed, status, description, reference, created_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.ID, &txn.AccountID, &txn.Number, &txn.Type, &txn.Subtype, &txn.Amount,
		&txn.BalanceBefore, &txn.BalanceAfter, &txn.BalanceImpact,
		&txn.OriginalTransactionID, &txn.ReversalID, &txn.Reversed,
		&txn.Status, &txn.Description, &txn.Reference, &txn.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan transaction row", zap.Error(err))
		return nil, err
	}
	return &txn, nil
}

// NextNumber bumps the per-day sequence row atomically and formats a
// unique transaction number. No count()+1; the sequence row update and
// the unique index on transaction_number both guard against races.
func (r *Repository) NextNumber(ctx context.Context, at time.Time) (string, error) {
	query := `
        INSERT INTO transaction_sequences (day, last_value)
        VALUES ($1, 1)
        ON CONFLICT (day) DO UPDATE SET last_value = transaction_sequences.last_value + 1
        RETURNING last_value
    `
	day := at.UTC().Truncate(24 * time.Hour)
	var seq int64
	if err := r.db.QueryRow(ctx, query, day).Scan(&seq); err != nil {
		zap.L().Error("can't advance transaction sequence", zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("TXN-%s-%06d", day.Format("20060102"), seq), nil
}

func (r *Repository) Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	query := `
        INSERT INTO transactions (account_id, transaction_number, type, subtype, amount, balance_before, balance_after, balance_impact, original_transaction_id, status, description, reference)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		txn.AccountID, txn.Number, txn.Type, txn.Subtype, txn.Amount,
		txn.BalanceBefore, txn.BalanceAfter, txn.BalanceImpact,
		txn.OriginalTransactionID, txn.Status, txn.Description, txn.Reference,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, err
	}
	return txn, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE id = $1
    `
	return scanTransaction(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) GetByNumber(ctx context.Context, number string) (*domain.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE transaction_number = $1
    `
	return scanTransaction(r.db.QueryRow(ctx, query, number))
}

// FindByReference returns the newest transaction carrying the external
// reference, or nil when none exists.
func (r *Repository) FindByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE reference = $1
        ORDER BY created_at DESC
        LIMIT 1
    `
	return scanTransaction(r.db.QueryRow(ctx, query, reference))
}

// MarkReversed flips the reversed flag exactly once. The reversed = false
// predicate is the compare-and-swap: a second concurrent reversal sees
// zero affected rows and reports false.
func (r *Repository) MarkReversed(ctx context.Context, id, reversalID int) (bool, error) {
	query := `
        UPDATE transactions
        SET reversed = TRUE, reversal_id = $1, status = $2
        WHERE id = $3 AND reversed = FALSE
    `
	tag, err := r.db.Exec(ctx, query, reversalID, domain.TransactionReversed, id)
	if err != nil {
		zap.L().Error("can't mark transaction reversed", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) FindByAccountID(ctx context.Context, accountID int) ([]domain.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE account_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("can't get transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		err := rows.Scan(
			&txn.ID, &txn.AccountID, &txn.Number, &txn.Type, &txn.Subtype, &txn.Amount,
			&txn.BalanceBefore, &txn.BalanceAfter, &txn.BalanceImpact,
			&txn.OriginalTransactionID, &txn.ReversalID, &txn.Reversed,
			&txn.Status, &txn.Description, &txn.Reference, &txn.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}
