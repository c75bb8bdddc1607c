package journalservice

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/events"
	"github.com/avialab/flightledger/internal/pg"
)

type TransactionRepo interface {
	NextNumber(ctx context.Context, at time.Time) (string, error)
	Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
	GetByID(ctx context.Context, id int) (*domain.Transaction, error)
	GetByNumber(ctx context.Context, number string) (*domain.Transaction, error)
	FindByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	MarkReversed(ctx context.Context, id, reversalID int) (bool, error)
	FindByAccountID(ctx context.Context, accountID int) ([]domain.Transaction, error)
}

type AccountRepo interface {
	GetForUpdate(ctx context.Context, id int) (*domain.Account, error)
	UpdateBalance(ctx context.Context, acc *domain.Account) error
}

var (
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrTransactionNotReversible = errors.New("transaction is not reversible")
	ErrAccountNotFound          = errors.New("account not found")
	ErrInvalidAmount            = errors.New("amount must be positive")
)

// Service is the append-only transaction journal. Entries are immutable
// once written; the only permitted change is the exactly-once reversal.
type Service struct {
	txnRepo     TransactionRepo
	accountRepo AccountRepo
	txManager   pg.TXManager
	publisher   events.Publisher
	now         func() time.Time
}

func New(txnRepo TransactionRepo, accountRepo AccountRepo, txManager pg.TXManager, publisher events.Publisher) *Service {
	return &Service{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		txManager:   txManager,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}

func (s *Service) List(ctx context.Context, accountID int) ([]domain.Transaction, error) {
	return s.txnRepo.FindByAccountID(ctx, accountID)
}

// FindByReference returns the newest entry carrying the external
// reference, or nil when no such entry exists.
func (s *Service) FindByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	return s.txnRepo.FindByReference(ctx, reference)
}

// Record writes a manual journal entry (an adjustment) applying impact
// to the account balance inside one atomic unit. The subtype carries
// the charge category the entry corrects.
func (s *Service) Record(ctx context.Context, accountID int, typ domain.TransactionType, subtype string, amount, impact decimal.Decimal, description, reference string) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	var txn *domain.Transaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		acc, err := s.accountRepo.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if acc == nil {
			return ErrAccountNotFound
		}
		txn, err = s.write(ctx, acc, typ, subtype, amount, impact, nil, description, reference)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Reverse undoes a completed transaction exactly once. The inverse
// balance impact, the reversal entry, and the flip of the original's
// reversed flag all commit atomically; the flagged UPDATE is the
// compare-and-swap that makes a concurrent second reversal fail.
func (s *Service) Reverse(ctx context.Context, transactionID int, reason string) (*domain.Transaction, error) {
	var reversal *domain.Transaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		orig, err := s.txnRepo.GetByID(ctx, transactionID)
		if err != nil {
			return err
		}
		if orig == nil {
			return ErrTransactionNotFound
		}
		if !orig.IsReversible() {
			return ErrTransactionNotReversible
		}

		acc, err := s.accountRepo.GetForUpdate(ctx, orig.AccountID)
		if err != nil {
			return err
		}
		if acc == nil {
			return ErrAccountNotFound
		}

		reversal, err = s.write(ctx, acc, domain.TransactionReversal, orig.Subtype, orig.Amount,
			orig.BalanceImpact.Neg(), &orig.ID, reason, orig.Number)
		if err != nil {
			return err
		}

		flipped, err := s.txnRepo.MarkReversed(ctx, orig.ID, reversal.ID)
		if err != nil {
			return err
		}
		if !flipped {
			// Lost the race to another reversal; roll everything back.
			return ErrTransactionNotReversible
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, events.New(events.TransactionReversed, map[string]any{
		"transaction_id":  transactionID,
		"reversal_number": reversal.Number,
	}))
	return reversal, nil
}

func (s *Service) write(ctx context.Context, acc *domain.Account, typ domain.TransactionType, subtype string, amount, impact decimal.Decimal, originalID *int, description, reference string) (*domain.Transaction, error) {
	before := acc.Balance
	after := before.Add(impact)
	acc.Balance = after
	if err := s.accountRepo.UpdateBalance(ctx, acc); err != nil {
		return nil, err
	}

	number, err := s.txnRepo.NextNumber(ctx, s.now())
	if err != nil {
		return nil, err
	}
	txn := &domain.Transaction{
		AccountID:             acc.ID,
		Number:                number,
		Type:                  typ,
		Subtype:               subtype,
		Amount:                amount,
		BalanceBefore:         before,
		BalanceAfter:          after,
		BalanceImpact:         impact,
		OriginalTransactionID: originalID,
		Status:                domain.TransactionCompleted,
		Description:           description,
		Reference:             reference,
	}
	return s.txnRepo.Create(ctx, txn)
}
