package order

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// MinItemQuantity is the smallest quantity a line item may carry.
const MinItemQuantity = 1

var errItemNameIsBlank = errors.New("item name is required")

// Item is an immutable order line: a named product and how many of it.
// Items compare structurally, so == is the equality check.
type Item struct {
	name     string
	quantity int
}

// NewItem validates name and quantity. A blank name and a quantity below
// MinItemQuantity are both reported.
func NewItem(name string, quantity int) (Item, error) {
	var item Item

	if err := errors.Join(
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Name returns the product name.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the number of units, always >= MinItemQuantity.
func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) String() string {
	return fmt.Sprintf("%s x%d", i.name, i.quantity)
}

func (i *Item) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsInvalidErrorWithCause("name", errItemNameIsBlank)
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < MinItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, MinItemQuantity, nil)
	}
	i.quantity = quantity
	return nil
}

// Validate rejects the zero Item, which can only come from a struct literal.
func (i Item) Validate() error {
	var probe Item
	return errors.Join(
		probe.setName(i.name),
		probe.setQuantity(i.quantity),
	)
}
