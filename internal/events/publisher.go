package events

import (
	"context"

	"go.uber.org/zap"
)

// Sink receives delivered events. A broker client would implement this.
type Sink interface {
	Deliver(e Event) error
}

// LogSink writes events to the application log.
type LogSink struct{}

func (LogSink) Deliver(e Event) error {
	zap.L().Info("event published",
		zap.String("event", e.Name),
		zap.Time("occurred_at", e.OccurredAt),
		zap.Any("payload", e.Payload),
	)
	return nil
}

// AsyncPublisher hands events to a worker pool so publishing never
// blocks or fails the financial mutation that triggered it.
type AsyncPublisher struct {
	sink Sink
	pool WorkerPoolI
}

func NewAsyncPublisher(sink Sink, poolSize int) *AsyncPublisher {
	return &AsyncPublisher{
		sink: sink,
		pool: NewWorkerPool(poolSize),
	}
}

func (p *AsyncPublisher) Publish(ctx context.Context, e Event) {
	err := p.pool.AddTask(ctx, func() error {
		return p.sink.Deliver(e)
	})
	if err != nil {
		zap.L().Warn("event dropped", zap.String("event", e.Name), zap.Error(err))
	}
}

func (p *AsyncPublisher) Close() {
	p.pool.Close()
}
