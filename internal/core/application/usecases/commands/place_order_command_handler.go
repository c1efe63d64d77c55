package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

// PlaceOrderCommandHandler creates and stores a new Pending order.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(repo, publisher, logger)
//	snapshot, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", snapshot.ID, snapshot.Status)
type PlaceOrderCommandHandler struct {
	repo   ports.OrderRepository
	events eventDispatcher
	logger *slog.Logger
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	repo ports.OrderRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	logger = logger.With("component", "place_order_command_handler")
	return PlaceOrderCommandHandler{
		repo:   repo,
		events: eventDispatcher{publisher: publisher, logger: logger},
		logger: logger,
	}
}

// Handle rebuilds each requested line as an order.Item, creates the order,
// saves it and returns a snapshot of the saved state. Validation and
// repository failures are returned unchanged.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	requested := cmd.Items()
	h.logger.InfoContext(ctx, "Processing PlaceOrderCommand", "items", len(requested))

	items := make([]order.Item, 0, len(requested))
	for _, line := range requested {
		item, err := order.NewItem(line.Name, line.Quantity)
		if err != nil {
			h.logger.ErrorContext(ctx, "Failed to place order", "error", err)
			return order.Snapshot{}, err
		}
		items = append(items, item)
	}

	aggregate, err := order.NewOrder(items)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to place order", "error", err)
		return order.Snapshot{}, err
	}

	saved, err := h.repo.Save(ctx, aggregate)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to place order", "order_id", aggregate.ID().String(), "error", err)
		return order.Snapshot{}, err
	}

	h.events.dispatch(ctx, aggregate)
	h.logger.InfoContext(ctx, "Placed order", "order_id", saved.ID().String())

	return saved.Snapshot(), nil
}
