package packageservice

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/events"
	"github.com/avialab/flightledger/internal/pg"
)

type Repo interface {
	Create(ctx context.Context, pkg *domain.UserPackage) (*domain.UserPackage, error)
	GetByID(ctx context.Context, id int) (*domain.UserPackage, error)
	GetForUpdate(ctx context.Context, id int) (*domain.UserPackage, error)
	Update(ctx context.Context, pkg *domain.UserPackage) error
	AppendUsage(ctx context.Context, usage *domain.PackageUsage) error
	ListByAccount(ctx context.Context, accountID int) ([]domain.UserPackage, error)
	ListUsage(ctx context.Context, packageID int) ([]domain.PackageUsage, error)
	FindExpiredActive(ctx context.Context, now time.Time, limit int) ([]domain.UserPackage, error)
}

var (
	ErrPackageNotFound     = errors.New("package not found")
	ErrPackageNotActive    = errors.New("package is not active")
	ErrPackageExpired      = errors.New("package has expired")
	ErrInsufficientCredits = errors.New("insufficient credits remaining")
	ErrInsufficientHours   = errors.New("insufficient hours remaining")
	ErrInvalidAmount       = errors.New("amount must be positive")
)

// Service tracks prepaid package balances. Balances only ever decrease;
// a package that hits zero flips to depleted and one past its expiry
// flips to expired (lazily here, eagerly by the background sweep).
type Service struct {
	repo      Repo
	txManager pg.TXManager
	publisher events.Publisher
	now       func() time.Time
}

func New(repo Repo, txManager pg.TXManager, publisher events.Publisher) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *Service) Purchase(ctx context.Context, accountID int, name string, credit, hours *decimal.Decimal, validity time.Duration) (*domain.UserPackage, error) {
	now := s.now()
	pkg := &domain.UserPackage{
		AccountID:       accountID,
		PackageName:     name,
		CreditRemaining: credit,
		HoursRemaining:  hours,
		PurchasedAt:     now,
		ExpiresAt:       now.Add(validity),
		Status:          domain.PackageActive,
	}
	pkg, err := s.repo.Create(ctx, pkg)
	if err != nil {
		zap.L().Error("failed to create user package", zap.Error(err))
		return nil, err
	}
	s.publisher.Publish(ctx, events.New(events.PackagePurchased, map[string]any{
		"package_id": pkg.ID,
		"account_id": accountID,
		"name":       name,
	}))
	return pkg, nil
}

func (s *Service) Get(ctx context.Context, id int) (*domain.UserPackage, error) {
	pkg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	return pkg, nil
}

func (s *Service) ListByAccount(ctx context.Context, accountID int) ([]domain.UserPackage, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

func (s *Service) UsageHistory(ctx context.Context, packageID int) ([]domain.PackageUsage, error) {
	return s.repo.ListUsage(ctx, packageID)
}

// UseCredit draws amount down from the credit balance.
func (s *Service) UseCredit(ctx context.Context, packageID int, amount decimal.Decimal, reference string) (*domain.UserPackage, error) {
	return s.use(ctx, packageID, domain.UsageCredit, amount, reference)
}

// UseHours draws hours down from the hours balance.
func (s *Service) UseHours(ctx context.Context, packageID int, hours decimal.Decimal, reference string) (*domain.UserPackage, error) {
	return s.use(ctx, packageID, domain.UsageHours, hours, reference)
}

func (s *Service) use(ctx context.Context, packageID int, kind domain.UsageKind, amount decimal.Decimal, reference string) (*domain.UserPackage, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var result *domain.UserPackage
	var useErr error
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		pkg, err := s.repo.GetForUpdate(ctx, packageID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return ErrPackageNotFound
		}

		switch pkg.Status {
		case domain.PackageActive:
		case domain.PackageExpired:
			return ErrPackageExpired
		default:
			return ErrPackageNotActive
		}

		if !s.now().Before(pkg.ExpiresAt) {
			// Lazy expiry: commit the status flip but fail the draw.
			pkg.Status = domain.PackageExpired
			if err := s.repo.Update(ctx, pkg); err != nil {
				return err
			}
			useErr = ErrPackageExpired
			return nil
		}

		var remaining *decimal.Decimal
		var insufficient error
		switch kind {
		case domain.UsageCredit:
			remaining = pkg.CreditRemaining
			insufficient = ErrInsufficientCredits
		case domain.UsageHours:
			remaining = pkg.HoursRemaining
			insufficient = ErrInsufficientHours
		}
		if remaining == nil || remaining.LessThan(amount) {
			return insufficient
		}

		left := remaining.Sub(amount)
		*remaining = left
		if !pkg.HasRemainingBalance() {
			pkg.Status = domain.PackageDepleted
		}
		if err := s.repo.Update(ctx, pkg); err != nil {
			return err
		}

		usage := &domain.PackageUsage{
			UserPackageID: pkg.ID,
			Kind:          kind,
			Amount:        amount,
			Remaining:     left,
			Reference:     reference,
			UsedAt:        s.now(),
		}
		if err := s.repo.AppendUsage(ctx, usage); err != nil {
			return err
		}
		result = pkg
		return nil
	})
	if err != nil {
		return nil, err
	}
	if useErr != nil {
		s.publishExpired(ctx, packageID)
		return nil, useErr
	}

	s.publisher.Publish(ctx, events.New(events.PackageUsed, map[string]any{
		"package_id": packageID,
		"kind":       string(kind),
		"amount":     amount.String(),
	}))
	if result.Status == domain.PackageDepleted {
		s.publisher.Publish(ctx, events.New(events.PackageDepleted, map[string]any{"package_id": packageID}))
	}
	return result, nil
}

// ExpireDue transitions active packages past their expiry. Called by the
// background sweep so packages expire even without a usage attempt.
func (s *Service) ExpireDue(ctx context.Context, limit int) (int, error) {
	pkgs, err := s.repo.FindExpiredActive(ctx, s.now(), limit)
	if err != nil {
		return 0, err
	}
	expired := 0
	for i := range pkgs {
		pkg := pkgs[i]
		err := s.txManager.Begin(ctx, func(ctx context.Context) error {
			locked, err := s.repo.GetForUpdate(ctx, pkg.ID)
			if err != nil {
				return err
			}
			if locked == nil || locked.Status != domain.PackageActive {
				return nil
			}
			locked.Status = domain.PackageExpired
			return s.repo.Update(ctx, locked)
		})
		if err != nil {
			zap.L().Error("failed to expire package", zap.Int("package_id", pkg.ID), zap.Error(err))
			continue
		}
		expired++
		s.publishExpired(ctx, pkg.ID)
	}
	return expired, nil
}

func (s *Service) publishExpired(ctx context.Context, packageID int) {
	s.publisher.Publish(ctx, events.New(events.PackageExpired, map[string]any{"package_id": packageID}))
}
