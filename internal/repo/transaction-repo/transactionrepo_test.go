package transactionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/avialab/flightledger/internal/domain"
)

const selectTransactionQuery = `SELECT id, account_id, transaction_number, type, subtype, amount, balance_before, balance_after, balance_impact, original_transaction_id, reversal_id, reversed, status, description, reference, created_at`

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func transactionRows(txns ...*domain.Transaction) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "account_id", "transaction_number", "type", "subtype", "amount", "balance_before", "balance_after", "balance_impact", "original_transaction_id", "reversal_id", "reversed", "status", "description", "reference", "created_at"})
	for _, txn := range txns {
		rows.AddRow(
			txn.ID, txn.AccountID, txn.Number, txn.Type, txn.Subtype, txn.Amount,
			txn.BalanceBefore, txn.BalanceAfter, txn.BalanceImpact,
			txn.OriginalTransactionID, txn.ReversalID, txn.Reversed,
			txn.Status, txn.Description, txn.Reference, txn.CreatedAt,
		)
	}
	return rows
}

func completedCharge(id int) *domain.Transaction {
	return &domain.Transaction{
		ID:            id,
		AccountID:     1,
		Number:        "TXN-20250601-000001",
		Type:          domain.TransactionCharge,
		Subtype:       "aircraft_rental",
		Amount:        decimal.NewFromInt(75),
		BalanceBefore: decimal.NewFromInt(100),
		BalanceAfter:  decimal.NewFromInt(25),
		BalanceImpact: decimal.NewFromInt(-75),
		Status:        domain.TransactionCompleted,
		Description:   "flight lesson",
		CreatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRepository_NextNumber(t *testing.T) {
	repo, mock := NewMock(t)

	at := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	day := at.Truncate(24 * time.Hour)

	t.Run("Formats number from the advanced sequence", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transaction_sequences`)).
			WithArgs(day).
			WillReturnRows(pgxmock.NewRows([]string{"last_value"}).AddRow(int64(42)))

		number, err := repo.NextNumber(context.Background(), at)
		assert.NoError(t, err)
		assert.Equal(t, "TXN-20250601-000042", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transaction_sequences`)).
			WithArgs(day).
			WillReturnError(errors.New("database error"))

		number, err := repo.NextNumber(context.Background(), at)
		assert.Error(t, err)
		assert.Empty(t, number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	txn := completedCharge(0)
	txn.CreatedAt = time.Time{}

	t.Run("Inserts entry and assigns id", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transactions`)).
			WithArgs(
				txn.AccountID, txn.Number, txn.Type, txn.Subtype, txn.Amount,
				txn.BalanceBefore, txn.BalanceAfter, txn.BalanceImpact,
				txn.OriginalTransactionID, txn.Status, txn.Description, txn.Reference,
			).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(10, now))

		result, err := repo.Create(context.Background(), txn)
		assert.NoError(t, err)
		assert.Equal(t, 10, result.ID)
		assert.Equal(t, now, result.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transactions`)).
			WithArgs(
				txn.AccountID, txn.Number, txn.Type, txn.Subtype, txn.Amount,
				txn.BalanceBefore, txn.BalanceAfter, txn.BalanceImpact,
				txn.OriginalTransactionID, txn.Status, txn.Description, txn.Reference,
			).
			WillReturnError(errors.New("database error"))

		result, err := repo.Create(context.Background(), txn)
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := NewMock(t)

	txn := completedCharge(10)

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
		result    *domain.Transaction
	}{
		{
			name: "Existing transaction returned",
			id:   10,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(selectTransactionQuery)).
					WithArgs(10).
					WillReturnRows(transactionRows(txn))
			},
			expectErr: false,
			result:    txn,
		},
		{
			name: "Unknown transaction returns nil",
			id:   99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(selectTransactionQuery)).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Database error",
			id:   10,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(selectTransactionQuery)).
					WithArgs(10).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByID(context.Background(), tt.id)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetByNumber(t *testing.T) {
	repo, mock := NewMock(t)

	txn := completedCharge(10)

	t.Run("Existing number returned", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectTransactionQuery)).
			WithArgs(txn.Number).
			WillReturnRows(transactionRows(txn))

		result, err := repo.GetByNumber(context.Background(), txn.Number)
		assert.NoError(t, err)
		assert.Equal(t, txn, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown number returns nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectTransactionQuery)).
			WithArgs("TXN-20250601-999999").
			WillReturnError(pgx.ErrNoRows)

		result, err := repo.GetByNumber(context.Background(), "TXN-20250601-999999")
		assert.NoError(t, err)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindByReference(t *testing.T) {
	repo, mock := NewMock(t)

	txn := completedCharge(10)
	txn.Reference = "gw_123"

	t.Run("Newest referenced transaction returned", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectTransactionQuery)).
			WithArgs("gw_123").
			WillReturnRows(transactionRows(txn))

		result, err := repo.FindByReference(context.Background(), "gw_123")
		assert.NoError(t, err)
		assert.Equal(t, txn, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown reference returns nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectTransactionQuery)).
			WithArgs("gw_999").
			WillReturnError(pgx.ErrNoRows)

		result, err := repo.FindByReference(context.Background(), "gw_999")
		assert.NoError(t, err)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectTransactionQuery)).
			WithArgs("gw_123").
			WillReturnError(errors.New("database error"))

		result, err := repo.FindByReference(context.Background(), "gw_123")
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_MarkReversed(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		marked    bool
	}{
		{
			name: "First reversal wins",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE transactions`)).
					WithArgs(11, domain.TransactionReversed, 10).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectErr: false,
			marked:    true,
		},
		{
			name: "Already reversed row affects nothing",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE transactions`)).
					WithArgs(11, domain.TransactionReversed, 10).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectErr: false,
			marked:    false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE transactions`)).
					WithArgs(11, domain.TransactionReversed, 10).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			marked:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			marked, err := repo.MarkReversed(context.Background(), 10, 11)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.marked, marked)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByAccountID(t *testing.T) {
	repo, mock := NewMock(t)

	first := completedCharge(10)
	second := completedCharge(11)
	second.Number = "TXN-20250601-000002"
	second.Type = domain.TransactionCredit
	second.BalanceImpact = decimal.NewFromInt(75)

	t.Run("Returns account history", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectTransactionQuery)).
			WithArgs(1).
			WillReturnRows(transactionRows(first, second))

		result, err := repo.FindByAccountID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, *first, result[0])
		assert.Equal(t, *second, result[1])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No transactions returns empty", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectTransactionQuery)).
			WithArgs(2).
			WillReturnRows(transactionRows())

		result, err := repo.FindByAccountID(context.Background(), 2)
		assert.NoError(t, err)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectTransactionQuery)).
			WithArgs(1).
			WillReturnError(errors.New("database error"))

		result, err := repo.FindByAccountID(context.Background(), 1)
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
