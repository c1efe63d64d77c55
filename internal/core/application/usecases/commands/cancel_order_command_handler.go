package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/ports"
)

// CancelOrderCommandHandler moves a Pending order to Cancelled.
//
// Load, cancel and save are not atomic: a concurrent approval of the same
// order may also see Pending, and whichever save lands last wins.
type CancelOrderCommandHandler struct {
	repo   ports.OrderRepository
	events eventDispatcher
	logger *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	repo ports.OrderRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	logger = logger.With("component", "cancel_order_command_handler")
	return CancelOrderCommandHandler{
		repo:   repo,
		events: eventDispatcher{publisher: publisher, logger: logger},
		logger: logger,
	}
}

// Handle returns an errs.ObjectNotFoundError when the order does not exist
// and an errs.StateTransitionIsInvalidError when it is not Pending. Callers
// re-query the order for its new state.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderID := cmd.OrderID().String()
	h.logger.InfoContext(ctx, "Processing CancelOrderCommand", "order_id", orderID)

	aggregate, err := loadOrder(ctx, h.repo, cmd.OrderID())
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to cancel order", "order_id", orderID, "error", err)
		return err
	}

	if err = aggregate.Cancel(); err != nil {
		h.logger.ErrorContext(ctx, "Failed to cancel order", "order_id", orderID, "error", err)
		return err
	}

	if _, err = h.repo.Save(ctx, aggregate); err != nil {
		h.logger.ErrorContext(ctx, "Failed to cancel order", "order_id", orderID, "error", err)
		return err
	}

	h.events.dispatch(ctx, aggregate)
	h.logger.InfoContext(ctx, "Cancelled order", "order_id", orderID)

	return nil
}
