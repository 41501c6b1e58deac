// Package queue buffers accepted predictions on their way to external sinks.
//
// The pipeline produces predictions faster than a remote store accepts them;
// the queue decouples the two while keeping memory bounded.
package queue

import (
	"context"
	"sync"

	"github.com/okian/maulas/internal/domain/model"
	"github.com/okian/maulas/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1024
)

// Item is the payload flowing through the queue.
type Item = model.Prediction

// Queue provides bounded enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an item, waiting for room while the queue is full.
	// Returns false if the queue is closed or ctx ends first.
	Enqueue(ctx context.Context, p Item) bool

	// Dequeue returns a channel that yields items until the queue is closed
	// and drained.
	Dequeue(ctx context.Context) <-chan Item

	// Len returns the current number of queued items.
	Len(ctx context.Context) int

	// Close stops accepting items. Already queued items are still delivered.
	Close() error
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	items    chan Item
	capacity int
	mu       sync.RWMutex
	closed   bool
}

var _ Queue = (*InMemoryQueue)(nil)

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.items = make(chan Item, q.capacity)
	metrics.UpdateSinkQueueDepth(0)
	return q
}

// Enqueue adds an item to the queue. Only the producer may call Close, so
// holding the read lock while blocked cannot stall a concurrent Close.
func (q *InMemoryQueue) Enqueue(ctx context.Context, p Item) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.items <- p:
		metrics.UpdateSinkQueueDepth(len(q.items))
		return true
	case <-ctx.Done():
		return false
	}
}

// Dequeue returns the receive side of the queue. Several consumers may range
// over it concurrently.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Item {
	return q.items
}

// Len returns the current number of queued items.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.items)
	metrics.UpdateSinkQueueDepth(size)
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.items)
	q.closed = true
	return nil
}
