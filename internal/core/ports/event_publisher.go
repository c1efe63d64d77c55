package ports

import (
	"context"

	"logistics/internal/core/domain/model/order"
)

// EventPublisher hands order domain events to whatever carries them out of
// the process. Handlers call it only after the change that produced the
// events has been saved.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
