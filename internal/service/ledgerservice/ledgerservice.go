package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/events"
	"github.com/avialab/flightledger/internal/pg"
	"github.com/avialab/flightledger/pkg/validate"
)

const (
	accountNumberPrefix = "ACCT-"
	accountNumberDigits = 10
)

type AccountRepo interface {
	GetByID(ctx context.Context, id int) (*domain.Account, error)
	GetForUpdate(ctx context.Context, id int) (*domain.Account, error)
	Create(ctx context.Context, acc *domain.Account) (*domain.Account, error)
	UpdateBalance(ctx context.Context, acc *domain.Account) error
	UpdateStatus(ctx context.Context, id int, status domain.AccountStatus) error
}

type TransactionRepo interface {
	NextNumber(ctx context.Context, at time.Time) (string, error)
	Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
	FindByAccountID(ctx context.Context, accountID int) ([]domain.Transaction, error)
}

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountSuspended    = errors.New("account is suspended")
	ErrAccountClosed       = errors.New("account is closed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrSameAccount         = errors.New("transfer requires two distinct accounts")
	ErrOutstandingBalance  = errors.New("account balance must be non-negative to close")
)

// Service owns the authoritative account balance. Every balance mutation
// runs inside a single database transaction holding the account row lock
// and writes exactly one journal entry.
type Service struct {
	accountRepo AccountRepo
	txnRepo     TransactionRepo
	txManager   pg.TXManager
	publisher   events.Publisher
	now         func() time.Time
}

func New(accountRepo AccountRepo, txnRepo TransactionRepo, txManager pg.TXManager, publisher events.Publisher) *Service {
	return &Service{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		txManager:   txManager,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *Service) CreateAccount(ctx context.Context, orgID, ownerID int, creditLimit decimal.Decimal) (*domain.Account, error) {
	if creditLimit.IsNegative() {
		return nil, ErrInvalidAmount
	}
	number, err := validate.GenerateLuhn(accountNumberDigits)
	if err != nil {
		return nil, err
	}
	acc := &domain.Account{
		OrganizationID: orgID,
		OwnerID:        ownerID,
		AccountNumber:  accountNumberPrefix + number,
		Balance:        decimal.Zero,
		CreditLimit:    creditLimit,
		PendingCharges: decimal.Zero,
		Status:         domain.AccountActive,
	}
	acc, err = s.accountRepo.Create(ctx, acc)
	if err != nil {
		zap.L().Error("failed to create account", zap.Error(err))
		return nil, err
	}
	s.publisher.Publish(ctx, events.New(events.AccountCreated, map[string]any{
		"account_id":     acc.ID,
		"account_number": acc.AccountNumber,
	}))
	return acc, nil
}

func (s *Service) GetAccount(ctx context.Context, id int) (*domain.Account, error) {
	acc, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrAccountNotFound
	}
	return acc, nil
}

func (s *Service) ListTransactions(ctx context.Context, accountID int) ([]domain.Transaction, error) {
	return s.txnRepo.FindByAccountID(ctx, accountID)
}

func checkActive(acc *domain.Account) error {
	switch acc.Status {
	case domain.AccountSuspended:
		return ErrAccountSuspended
	case domain.AccountClosed:
		return ErrAccountClosed
	}
	return nil
}

// apply mutates the locked account balance and writes the paired journal
// entry. Callers hold the row lock inside an open transaction.
func (s *Service) apply(ctx context.Context, acc *domain.Account, typ domain.TransactionType, amount, impact decimal.Decimal, description, reference string) (*domain.Transaction, error) {
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
		AccountID:     acc.ID,
		Number:        number,
		Type:          typ,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		BalanceImpact: impact,
		Status:        domain.TransactionCompleted,
		Description:   description,
		Reference:     reference,
	}
	return s.txnRepo.Create(ctx, txn)
}

// Charge debits the account. With allowCredit the check runs against the
// available balance (balance + credit limit - pending holds), otherwise
// against the raw balance.
func (s *Service) Charge(ctx context.Context, accountID int, amount decimal.Decimal, allowCredit bool, description, reference string) (*domain.Transaction, error) {
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
		if err := checkActive(acc); err != nil {
			return err
		}
		limit := acc.Balance
		if allowCredit {
			limit = acc.AvailableBalance()
		}
		if amount.GreaterThan(limit) {
			return ErrInsufficientBalance
		}
		txn, err = s.apply(ctx, acc, domain.TransactionCharge, amount, amount.Neg(), description, reference)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publishTransaction(ctx, txn)
	return txn, nil
}

// Credit adds funds to the account.
func (s *Service) Credit(ctx context.Context, accountID int, amount decimal.Decimal, description, reference string) (*domain.Transaction, error) {
	return s.addFunds(ctx, accountID, domain.TransactionCredit, amount, description, reference)
}

// Payment records money received from the account owner.
func (s *Service) Payment(ctx context.Context, accountID int, amount decimal.Decimal, description, reference string) (*domain.Transaction, error) {
	return s.addFunds(ctx, accountID, domain.TransactionPayment, amount, description, reference)
}

func (s *Service) addFunds(ctx context.Context, accountID int, typ domain.TransactionType, amount decimal.Decimal, description, reference string) (*domain.Transaction, error) {
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
		if acc.Status == domain.AccountClosed {
			return ErrAccountClosed
		}
		txn, err = s.apply(ctx, acc, typ, amount, amount, description, reference)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publishTransaction(ctx, txn)
	return txn, nil
}

// Transfer moves funds between two accounts. Both rows are locked in
// ascending account-id order so two opposite-direction transfers can
// never deadlock.
func (s *Service) Transfer(ctx context.Context, fromID, toID int, amount decimal.Decimal, reference string) (*domain.Transaction, *domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}
	if fromID == toID {
		return nil, nil, ErrSameAccount
	}

	var out, in *domain.Transaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		first, second := fromID, toID
		if second < first {
			first, second = second, first
		}
		locked := make(map[int]*domain.Account, 2)
		for _, id := range []int{first, second} {
			acc, err := s.accountRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if acc == nil {
				return ErrAccountNotFound
			}
			locked[id] = acc
		}
		from, to := locked[fromID], locked[toID]

		if err := checkActive(from); err != nil {
			return err
		}
		if err := checkActive(to); err != nil {
			return err
		}
		if amount.GreaterThan(from.Balance) {
			return ErrInsufficientBalance
		}

		var err error
		out, err = s.apply(ctx, from, domain.TransactionTransfer, amount, amount.Neg(),
			fmt.Sprintf("transfer to %s", to.AccountNumber), reference)
		if err != nil {
			return err
		}
		in, err = s.apply(ctx, to, domain.TransactionTransfer, amount, amount,
			fmt.Sprintf("transfer from %s", from.AccountNumber), reference)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.publishTransaction(ctx, out)
	s.publishTransaction(ctx, in)
	return out, in, nil
}

// ReservePending places an uncommitted hold against the available
// balance. Holds never create journal entries.
func (s *Service) ReservePending(ctx context.Context, accountID int, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		acc, err := s.accountRepo.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if acc == nil {
			return ErrAccountNotFound
		}
		if err := checkActive(acc); err != nil {
			return err
		}
		if amount.GreaterThan(acc.AvailableBalance()) {
			return ErrInsufficientBalance
		}
		acc.PendingCharges = acc.PendingCharges.Add(amount)
		return s.accountRepo.UpdateBalance(ctx, acc)
	})
}

// ReleasePending frees part of a hold. Releasing more than is held
// clears the hold entirely.
func (s *Service) ReleasePending(ctx context.Context, accountID int, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		acc, err := s.accountRepo.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if acc == nil {
			return ErrAccountNotFound
		}
		acc.PendingCharges = acc.PendingCharges.Sub(amount)
		if acc.PendingCharges.IsNegative() {
			acc.PendingCharges = decimal.Zero
		}
		return s.accountRepo.UpdateBalance(ctx, acc)
	})
}

func (s *Service) SuspendAccount(ctx context.Context, accountID int) error {
	err := s.setStatus(ctx, accountID, domain.AccountActive, domain.AccountSuspended)
	if err != nil {
		return err
	}
	s.publisher.Publish(ctx, events.New(events.AccountSuspended, map[string]any{"account_id": accountID}))
	return nil
}

func (s *Service) ReactivateAccount(ctx context.Context, accountID int) error {
	return s.setStatus(ctx, accountID, domain.AccountSuspended, domain.AccountActive)
}

// CloseAccount is terminal. Accounts are never deleted, and closing
// requires a non-negative balance.
func (s *Service) CloseAccount(ctx context.Context, accountID int) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		acc, err := s.accountRepo.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if acc == nil {
			return ErrAccountNotFound
		}
		if acc.Status == domain.AccountClosed {
			return ErrAccountClosed
		}
		if acc.Balance.IsNegative() {
			return ErrOutstandingBalance
		}
		return s.accountRepo.UpdateStatus(ctx, accountID, domain.AccountClosed)
	})
	if err != nil {
		return err
	}
	s.publisher.Publish(ctx, events.New(events.AccountClosed, map[string]any{"account_id": accountID}))
	return nil
}

func (s *Service) setStatus(ctx context.Context, accountID int, from, to domain.AccountStatus) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		acc, err := s.accountRepo.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if acc == nil {
			return ErrAccountNotFound
		}
		if acc.Status != from {
			if acc.Status == domain.AccountClosed {
				return ErrAccountClosed
			}
			return fmt.Errorf("account %d is %s, expected %s", accountID, acc.Status, from)
		}
		return s.accountRepo.UpdateStatus(ctx, accountID, to)
	})
}

func (s *Service) publishTransaction(ctx context.Context, txn *domain.Transaction) {
	if txn == nil {
		return
	}
	s.publisher.Publish(ctx, events.New(events.TransactionCreated, map[string]any{
		"transaction_number": txn.Number,
		"account_id":         txn.AccountID,
		"type":               string(txn.Type),
		"balance_impact":     txn.BalanceImpact.String(),
	}))
}
