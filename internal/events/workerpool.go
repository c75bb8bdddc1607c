package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type WorkerPoolI interface {
	AddTask(ctx context.Context, task Task) error
	Close()
}

type Task func() error

type WorkerPool struct {
	tasks chan Task
	wg    sync.WaitGroup
	once  sync.Once
}

func NewWorkerPool(size int) *WorkerPool {
	wp := &WorkerPool{tasks: make(chan Task, size)}
	wp.wg.Add(size)
	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		if err := task(); err != nil {
			zap.L().Error("task execution failed", zap.Error(err))
		}
	}
}

func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.tasks <- task:
		return nil
	}
}

// Close stops accepting tasks and blocks until every queued task has run
// and all workers have exited. Safe to call more than once.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() { close(wp.tasks) })
	wp.wg.Wait()
}
