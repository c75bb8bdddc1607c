package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakePackageSweep struct {
	mu    sync.Mutex
	calls int
	n     int
	err   error
}

func (f *fakePackageSweep) ExpireDue(ctx context.Context, limit int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.n, f.err
}

type fakeInvoiceSweep struct {
	mu    sync.Mutex
	calls int
	n     int
	err   error
}

func (f *fakeInvoiceSweep) MarkOverdue(ctx context.Context, limit int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.n, f.err
}

func TestSweepRunsBothSweeps(t *testing.T) {
	packages := &fakePackageSweep{n: 2}
	invoices := &fakeInvoiceSweep{n: 1}
	s := New(packages, invoices, time.Minute)

	s.sweep(context.Background())

	assert.Equal(t, 1, packages.calls)
	assert.Equal(t, 1, invoices.calls)
}

func TestSweepContinuesPastFailure(t *testing.T) {
	packages := &fakePackageSweep{err: errors.New("database error")}
	invoices := &fakeInvoiceSweep{n: 1}
	s := New(packages, invoices, time.Minute)

	s.sweep(context.Background())

	assert.Equal(t, 1, packages.calls)
	assert.Equal(t, 1, invoices.calls)
}

func TestGuardedSkipsRunningSweep(t *testing.T) {
	packages := &fakePackageSweep{}
	invoices := &fakeInvoiceSweep{}
	s := New(packages, invoices, time.Minute)

	runningSweeps.Store("packages", struct{}{})
	defer runningSweeps.Delete("packages")

	s.sweep(context.Background())

	assert.Equal(t, 0, packages.calls)
	assert.Equal(t, 1, invoices.calls)
}

func TestStartStopsOnContextCancel(t *testing.T) {
	packages := &fakePackageSweep{}
	invoices := &fakeInvoiceSweep{}
	s := New(packages, invoices, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	time.Sleep(35 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	packages.mu.Lock()
	ran := packages.calls
	packages.mu.Unlock()
	assert.GreaterOrEqual(t, ran, 1)

	invoices.mu.Lock()
	after := invoices.calls
	invoices.mu.Unlock()

	time.Sleep(30 * time.Millisecond)
	invoices.mu.Lock()
	assert.Equal(t, after, invoices.calls)
	invoices.mu.Unlock()
}
