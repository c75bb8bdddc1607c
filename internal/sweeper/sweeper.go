package sweeper

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PackageSweep expires active prepaid packages past their expiry.
type PackageSweep interface {
	ExpireDue(ctx context.Context, limit int) (int, error)
}

// InvoiceSweep flips unpaid invoices past their due date to overdue.
type InvoiceSweep interface {
	MarkOverdue(ctx context.Context, limit int) (int, error)
}

var runningSweeps sync.Map

// Service periodically runs the maintenance sweeps that lazy, on-access
// transitions alone would miss.
type Service struct {
	packages PackageSweep
	invoices InvoiceSweep
	interval time.Duration
	limit    int
}

func New(packages PackageSweep, invoices InvoiceSweep, interval time.Duration) *Service {
	return &Service{
		packages: packages,
		invoices: invoices,
		interval: interval,
		limit:    1000,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("sweeper started", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping sweeper")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	var g errgroup.Group

	g.Go(func() error {
		return s.guarded("packages", func() error {
			n, err := s.packages.ExpireDue(ctx, s.limit)
			if err != nil {
				return err
			}
			if n > 0 {
				zap.L().Info("expired packages", zap.Int("count", n))
			}
			return nil
		})
	})

	g.Go(func() error {
		return s.guarded("invoices", func() error {
			n, err := s.invoices.MarkOverdue(ctx, s.limit)
			if err != nil {
				return err
			}
			if n > 0 {
				zap.L().Info("marked invoices overdue", zap.Int("count", n))
			}
			return nil
		})
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("sweep failed", zap.Error(err))
	}
}

// guarded skips a sweep kind that is still running from a previous tick.
func (s *Service) guarded(kind string, fn func() error) error {
	if _, loaded := runningSweeps.LoadOrStore(kind, struct{}{}); loaded {
		return nil
	}
	defer runningSweeps.Delete(kind)
	return fn()
}
