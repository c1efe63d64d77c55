package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/ports"
)

// ApproveOrderCommandHandler moves a Pending order to Approved.
//
// Load, approve and save are not atomic: a concurrent cancel of the same
// order may also see Pending, and whichever save lands last wins.
type ApproveOrderCommandHandler struct {
	repo   ports.OrderRepository
	events eventDispatcher
	logger *slog.Logger
}

// NewApproveOrderCommandHandler creates a handler for order approval.
func NewApproveOrderCommandHandler(
	repo ports.OrderRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ApproveOrderCommandHandler {
	logger = logger.With("component", "approve_order_command_handler")
	return ApproveOrderCommandHandler{
		repo:   repo,
		events: eventDispatcher{publisher: publisher, logger: logger},
		logger: logger,
	}
}

// Handle returns an errs.ObjectNotFoundError when the order does not exist
// and an errs.StateTransitionIsInvalidError when it is not Pending. Callers
// re-query the order for its new state.
func (h *ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderID := cmd.OrderID().String()
	h.logger.InfoContext(ctx, "Processing ApproveOrderCommand", "order_id", orderID)

	aggregate, err := loadOrder(ctx, h.repo, cmd.OrderID())
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to approve order", "order_id", orderID, "error", err)
		return err
	}

	if err = aggregate.Approve(); err != nil {
		h.logger.ErrorContext(ctx, "Failed to approve order", "order_id", orderID, "error", err)
		return err
	}

	if _, err = h.repo.Save(ctx, aggregate); err != nil {
		h.logger.ErrorContext(ctx, "Failed to approve order", "order_id", orderID, "error", err)
		return err
	}

	h.events.dispatch(ctx, aggregate)
	h.logger.InfoContext(ctx, "Approved order", "order_id", orderID)

	return nil
}
