// Package orderrepo keeps orders in process memory. It is the reference
// OrderRepository: the default storage of the service and the backing store
// of the use case tests.
package orderrepo

import (
	"context"
	"sync"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// MemoryOrderRepository stores order snapshots keyed by id. Every Save and
// every read works on its own copy, so no two callers share an aggregate.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]order.Snapshot
}

// NewMemoryOrderRepository creates an empty repository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[kernel.UUID]order.Snapshot),
	}
}

// Save stores a copy of aggregate, replacing any order with the same id.
func (r *MemoryOrderRepository) Save(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	snapshot := aggregate.Snapshot()

	r.mu.Lock()
	r.orders[snapshot.ID] = snapshot
	r.mu.Unlock()

	return restore(snapshot)
}

// FindByID returns a fresh copy of the stored order.
func (r *MemoryOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	r.mu.RLock()
	snapshot, found := r.orders[id]
	r.mu.RUnlock()

	if !found {
		return nil, false, nil
	}

	aggregate, err := restore(snapshot)
	if err != nil {
		return nil, false, err
	}
	return aggregate, true, nil
}

// FindAll returns copies of all stored orders in map iteration order.
func (r *MemoryOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	snapshots := make([]order.Snapshot, 0, len(r.orders))
	for _, snapshot := range r.orders {
		snapshots = append(snapshots, snapshot)
	}
	r.mu.RUnlock()

	orders := make([]*order.Order, 0, len(snapshots))
	for _, snapshot := range snapshots {
		aggregate, err := restore(snapshot)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

func restore(s order.Snapshot) (*order.Order, error) {
	return order.RestoreOrder(s.ID, s.Items, s.Status, s.CreatedAt, s.UpdatedAt)
}
