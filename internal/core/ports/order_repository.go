// Package ports defines the contracts between the order core and the
// infrastructure that stores orders and carries their events.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for order aggregates.
//
// Implementations must be safe for concurrent use. They guarantee only that
// their own storage is never corrupted; a caller's load -> mutate -> Save
// sequence is not atomic, and the last Save for an id wins.
type OrderRepository interface {
	// Save inserts or overwrites the order with the same id and returns the
	// persisted representation. There is no version check.
	Save(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// FindByID returns the stored order and true, or nil and false when no
	// order has that id. Absence is not an error.
	FindByID(ctx context.Context, id kernel.UUID) (*order.Order, bool, error)

	// FindAll returns every stored order. Iteration order is unspecified.
	FindAll(ctx context.Context) ([]*order.Order, error)
}
