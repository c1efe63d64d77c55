package queries

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// GetOrderQueryHandler reads one order from the repository.
type GetOrderQueryHandler struct {
	repo   ports.OrderRepository
	logger *slog.Logger
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(repo ports.OrderRepository, logger *slog.Logger) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		repo:   repo,
		logger: logger.With("component", "get_order_query_handler"),
	}
}

// Handle returns the order's snapshot, or an errs.ObjectNotFoundError when no
// order has the requested id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	orderID := query.OrderID().String()

	aggregate, found, err := h.repo.FindByID(ctx, query.OrderID())
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to load order", "order_id", orderID, "error", err)
		return order.Snapshot{}, err
	}
	if !found {
		h.logger.DebugContext(ctx, "Order not found", "order_id", orderID)
		return order.Snapshot{}, errs.NewObjectNotFoundError("order", orderID)
	}

	return aggregate.Snapshot(), nil
}
