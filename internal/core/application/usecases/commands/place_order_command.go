package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// PlaceOrderItem is one requested line of a PlaceOrderCommand.
type PlaceOrderItem struct {
	Name     string
	Quantity int
}

// PlaceOrderCommand requests a new order for a non-empty list of items.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand([]PlaceOrderItem{
//	    {Name: "Syringe", Quantity: 10},
//	    {Name: "Bandage", Quantity: 20},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	snapshot, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	items []PlaceOrderItem

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates that items is non-empty and that every item
// has a non-blank name and a quantity of at least order.MinItemQuantity.
// All item problems are reported together.
func NewPlaceOrderCommand(items []PlaceOrderItem) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setItems(items); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// Items returns a copy of the requested lines.
func (c PlaceOrderCommand) Items() []PlaceOrderItem {
	return slices.Clone(c.items)
}

func (c *PlaceOrderCommand) setItems(items []PlaceOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	itemErrs := make([]error, 0)
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			itemErrs = append(itemErrs, errs.NewValueIsInvalidError(fmt.Sprintf("items[%d].name", i)))
		}
		if item.Quantity < order.MinItemQuantity {
			itemErrs = append(itemErrs, errs.NewValueIsOutOfRangeError(
				fmt.Sprintf("items[%d].quantity", i), item.Quantity, order.MinItemQuantity, nil,
			))
		}
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	c.items = slices.Clone(items)
	return nil
}
