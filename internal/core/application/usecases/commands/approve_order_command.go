package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrApproveOrderCommandIsNotConstructed = errors.New(
	"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
)

// ApproveOrderCommand requests approval of a Pending order.
type ApproveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveOrderCommand fails with kernel.ErrUUIDIsNotConstructed for a zero id.
func NewApproveOrderCommand(orderID kernel.UUID) (ApproveOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ApproveOrderCommand{}, err
	}

	return ApproveOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

// OrderID returns the order to approve.
func (c ApproveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
