// Package outbox decouples the use cases from the event transport. Handlers
// publish into a MemoryOutbox, which only queues; a scheduled relay later
// drains the queue into the real publisher.
package outbox

import (
	"context"
	"errors"
	"slices"
	"sync"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

// DefaultCapacity bounds the number of queued events.
const DefaultCapacity = 10_000

// DefaultBatchSize is the most events one Relay call hands downstream.
const DefaultBatchSize = 100

var ErrOutboxIsFull = errors.New("outbox is full")

// MemoryOutbox is a bounded FIFO of order events. It is safe for concurrent
// use. Events queued here are lost if the process exits before a relay.
type MemoryOutbox struct {
	mu        sync.Mutex
	pending   []order.Event
	capacity  int
	batchSize int
	target    ports.EventPublisher
}

// NewMemoryOutbox creates an outbox relaying into target. Non-positive
// capacity or batchSize fall back to the defaults.
func NewMemoryOutbox(target ports.EventPublisher, capacity, batchSize int) *MemoryOutbox {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &MemoryOutbox{
		capacity:  capacity,
		batchSize: batchSize,
		target:    target,
	}
}

// Publish queues events. It fails with ErrOutboxIsFull and queues none of
// them when they do not all fit.
func (o *MemoryOutbox) Publish(ctx context.Context, events ...order.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.pending)+len(events) > o.capacity {
		return ErrOutboxIsFull
	}
	o.pending = append(o.pending, events...)
	return nil
}

// Len returns the number of queued events.
func (o *MemoryOutbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}

// Relay hands up to one batch to the target and returns how many events were
// delivered. On failure the batch goes back to the head of the queue so event
// order is kept.
func (o *MemoryOutbox) Relay(ctx context.Context) (int, error) {
	o.mu.Lock()
	n := min(len(o.pending), o.batchSize)
	batch := slices.Clone(o.pending[:n])
	o.pending = o.pending[n:]
	o.mu.Unlock()

	if n == 0 {
		return 0, nil
	}

	if err := o.target.Publish(ctx, batch...); err != nil {
		o.mu.Lock()
		o.pending = append(batch, o.pending...)
		o.mu.Unlock()
		return 0, err
	}
	return n, nil
}
