package accountrepo

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

const selectAccountQuery = `SELECT id, organization_id, owner_id, account_number, balance, credit_limit, pending_charges, status, created_at, updated_at`

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func accountRows(acc *domain.Account) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "organization_id", "owner_id", "account_number", "balance", "credit_limit", "pending_charges", "status", "created_at", "updated_at"}).
		AddRow(acc.ID, acc.OrganizationID, acc.OwnerID, acc.AccountNumber, acc.Balance, acc.CreditLimit, acc.PendingCharges, acc.Status, acc.CreatedAt, acc.UpdatedAt)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	account := &domain.Account{
		ID:             1,
		OrganizationID: 1,
		OwnerID:        7,
		AccountNumber:  "ACCT-1000000008",
		Balance:        decimal.NewFromInt(100),
		CreditLimit:    decimal.Zero,
		PendingCharges: decimal.Zero,
		Status:         domain.AccountActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
		result    *domain.Account
	}{
		{
			name: "Existing account returned",
			id:   1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(selectAccountQuery)).
					WithArgs(1).
					WillReturnRows(accountRows(account))
			},
			expectErr: false,
			result:    account,
		},
		{
			name: "Unknown account returns nil",
			id:   99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(selectAccountQuery)).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Database error",
			id:   1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(selectAccountQuery)).
					WithArgs(1).
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

func TestRepository_GetForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	account := &domain.Account{
		ID:             3,
		OrganizationID: 1,
		OwnerID:        2,
		AccountNumber:  "ACCT-1000000016",
		Balance:        decimal.NewFromInt(50),
		CreditLimit:    decimal.NewFromInt(100),
		PendingCharges: decimal.NewFromInt(10),
		Status:         domain.AccountActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	t.Run("Locks and returns the row", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
			WithArgs(3).
			WillReturnRows(accountRows(account))

		result, err := repo.GetForUpdate(context.Background(), 3)
		assert.NoError(t, err)
		assert.Equal(t, account, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown account returns nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
			WithArgs(99).
			WillReturnError(pgx.ErrNoRows)

		result, err := repo.GetForUpdate(context.Background(), 99)
		assert.NoError(t, err)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		account   *domain.Account
		mockSetup func(acc *domain.Account)
		expectErr bool
	}{
		{
			name: "Creates account and assigns id",
			account: &domain.Account{
				OrganizationID: 1,
				OwnerID:        7,
				AccountNumber:  "ACCT-1000000008",
				Balance:        decimal.Zero,
				CreditLimit:    decimal.Zero,
				PendingCharges: decimal.Zero,
				Status:         domain.AccountActive,
			},
			mockSetup: func(acc *domain.Account) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO accounts`)).
					WithArgs(acc.OrganizationID, acc.OwnerID, acc.AccountNumber, acc.Balance, acc.CreditLimit, acc.PendingCharges, acc.Status).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(5, now, now))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			account: &domain.Account{
				OrganizationID: 1,
				OwnerID:        8,
				AccountNumber:  "ACCT-1000000024",
				Status:         domain.AccountActive,
			},
			mockSetup: func(acc *domain.Account) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO accounts`)).
					WithArgs(acc.OrganizationID, acc.OwnerID, acc.AccountNumber, acc.Balance, acc.CreditLimit, acc.PendingCharges, acc.Status).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup(tt.account)
			result, err := repo.Create(context.Background(), tt.account)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 5, result.ID)
				assert.Equal(t, now, result.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpdateBalance(t *testing.T) {
	repo, mock := NewMock(t)

	account := &domain.Account{
		ID:             1,
		Balance:        decimal.NewFromInt(25),
		PendingCharges: decimal.NewFromInt(5),
	}

	t.Run("Writes balance and pending charges", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts`)).
			WithArgs(account.Balance, account.PendingCharges, account.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateBalance(context.Background(), account)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts`)).
			WithArgs(account.Balance, account.PendingCharges, account.ID).
			WillReturnError(errors.New("database error"))

		err := repo.UpdateBalance(context.Background(), account)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Writes the new status", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts`)).
			WithArgs(domain.AccountSuspended, 1).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateStatus(context.Background(), 1, domain.AccountSuspended)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts`)).
			WithArgs(domain.AccountClosed, 2).
			WillReturnError(errors.New("database error"))

		err := repo.UpdateStatus(context.Background(), 2, domain.AccountClosed)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
