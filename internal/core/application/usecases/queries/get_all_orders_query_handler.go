package queries

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

// GetAllOrdersQueryHandler lists snapshots of all stored orders.
//
// Example:
//
//	handler := NewGetAllOrdersQueryHandler(repo, logger)
//	snapshots, err := handler.Handle(ctx, NewGetAllOrdersQuery())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Found %d orders\n", len(snapshots))
type GetAllOrdersQueryHandler struct {
	repo   ports.OrderRepository
	logger *slog.Logger
}

func NewGetAllOrdersQueryHandler(repo ports.OrderRepository, logger *slog.Logger) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{
		repo:   repo,
		logger: logger.With("component", "get_all_orders_query_handler"),
	}
}

// Handle never returns a nil slice on success; an empty store yields an empty
// list.
func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.repo.FindAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list orders", "error", err)
		return nil, err
	}

	snapshots := make([]order.Snapshot, 0, len(orders))
	for _, o := range orders {
		snapshots = append(snapshots, o.Snapshot())
	}
	return snapshots, nil
}
