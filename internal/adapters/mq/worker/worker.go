// Package worker drains the sink queue into external prediction stores.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/okian/maulas/internal/adapters/mq/queue"
	"github.com/okian/maulas/internal/domain/model"
	"github.com/okian/maulas/pkg/logger"
	"github.com/okian/maulas/pkg/metrics"
)

// Item is what workers read off the queue.
type Item = queue.Item

// Sink stores one prediction. Writes are idempotent per (round, member), so
// workers may deliver in any order.
type Sink interface {
	Upsert(ctx context.Context, p model.Prediction) error
}

// Target is a named sink; the name labels metrics and errors.
type Target struct {
	Name string
	Sink Sink
}

// Queue defines how workers receive items.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Item
}

// InMemoryWorker writes every dequeued prediction to all targets.
type InMemoryWorker struct {
	queue   Queue
	targets []Target
	name    string

	mu   sync.Mutex
	errs []error
	done chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, targets []Target, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:   q,
		targets: targets,
		name:    "worker",
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Named("sink").Named(w.name)
	}
	return w
}

// Run consumes items until the queue is drained or ctx is canceled.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	items := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			w.fail(ctx.Err())
			return
		case p, ok := <-items:
			if !ok {
				return
			}
			w.process(ctx, p)
		}
	}
}

// Err returns the write failures seen so far.
func (w *InMemoryWorker) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return errors.Join(w.errs...)
}

func (w *InMemoryWorker) process(ctx context.Context, p Item) {
	for _, t := range w.targets {
		err := t.Sink.Upsert(ctx, p)
		metrics.RecordSinkWrite(t.Name, err)
		if err != nil {
			w.logger.Error(ctx, "sink write failed",
				logger.String("sink", t.Name),
				logger.String("key", p.Key()),
				logger.Error(err),
			)
			w.fail(fmt.Errorf("%s: %s: %w", t.Name, p.Key(), err))
		}
	}
}

func (w *InMemoryWorker) fail(err error) {
	w.mu.Lock()
	w.errs = append(w.errs, err)
	w.mu.Unlock()
}

// Pool manages multiple workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a worker pool. A count below 1 uses one worker per CPU.
func NewPool(workerCount int, q Queue, targets []Target, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Named("sink-pool"),
	}
	for i := 0; i < workerCount; i++ {
		wopts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewInMemoryWorker(q, targets, wopts...)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Drain closes the queue, waits for every worker to finish and returns the
// joined write failures. It is safe to call more than once.
func (p *Pool) Drain(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	var errs []error
	for i, w := range p.workers {
		select {
		case <-w.done:
			errs = append(errs, w.Err())
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker drain timed out", logger.Int("worker_id", i))
			return fmt.Errorf("drain timed out: %w", ctx.Err())
		}
	}
	return errors.Join(errs...)
}
