// Package commands contains the use cases that change order state: placing,
// approving and cancelling orders. Every handler follows the same shape:
// validate the command, load the aggregate if one is needed, run the domain
// operation, save, then hand the recorded domain events to the publisher.
package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// eventDispatcher forwards an aggregate's recorded events after it has been
// saved. A publishing failure is logged and does not fail the use case: the
// state change is already durable.
type eventDispatcher struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func (d eventDispatcher) dispatch(ctx context.Context, aggregate *order.Order) {
	events := aggregate.DomainEvents()
	if len(events) == 0 {
		return
	}

	if err := d.publisher.Publish(ctx, events...); err != nil {
		d.logger.ErrorContext(ctx, "Failed to publish order events",
			"order_id", aggregate.ID().String(),
			"events", len(events),
			"error", err,
		)
	}
	aggregate.ClearDomainEvents()
}

// loadOrder returns the order with id or an errs.ObjectNotFoundError.
func loadOrder(ctx context.Context, repo ports.OrderRepository, id kernel.UUID) (*order.Order, error) {
	aggregate, found, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return aggregate, nil
}
