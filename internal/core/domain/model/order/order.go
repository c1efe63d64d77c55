package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// timestampPrecision matches what the SQL adapter can store, so an order
// read back from any repository carries the exact timestamps it was saved with.
const timestampPrecision = time.Microsecond

var (
	// ErrOrderIsNotConstructed is returned by Validate for an Order that did
	// not come from NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	errOrderHasNoItems = errors.New("order must include at least 1 item")
)

// now is the aggregate's clock.
var now = func() time.Time {
	return time.Now().UTC().Truncate(timestampPrecision)
}

// Order is the aggregate root of the ordering context. It owns its items and
// its status; callers change it only through Approve and Cancel.
//
// Invariants:
//   - at least one item, fixed for the life of the order
//   - status moves only out of Pending, into Approved or Cancelled
//   - createdAt never changes; updatedAt advances on every accepted transition
//
// An Order is not safe for concurrent mutation. Repositories hand out
// independent copies, so two callers never share one instance.
type Order struct {
	id        kernel.UUID
	items     []Item
	status    Status
	createdAt time.Time
	updatedAt time.Time

	events []Event

	isConstructed bool
}

// Snapshot is a read-only projection of an order, detached from the
// aggregate it was taken from.
type Snapshot struct {
	ID        kernel.UUID
	Status    Status
	Items     []Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder places a new order: it assigns a fresh id, copies items, starts in
// Pending with createdAt == updatedAt, and records an EventOrderPlaced.
//
// It fails with an errs.ValueIsRequiredError when items is empty and with the
// item's own validation error for any zero Item.
func NewOrder(items []Item) (*Order, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause("items", errOrderHasNoItems)
	}

	itemErrs := make([]error, 0)
	for i, item := range items {
		if err := item.Validate(); err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("items[%d]: %w", i, err))
		}
	}
	if err := errors.Join(itemErrs...); err != nil {
		return nil, err
	}

	ts := now()
	o := &Order{
		id:            kernel.NewUUID(),
		items:         slices.Clone(items),
		status:        Pending,
		createdAt:     ts,
		updatedAt:     ts,
		isConstructed: true,
	}
	o.record(EventOrderPlaced, ts)

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. Every field is
// required; business rules are not re-checked because they held when the
// order was first built. No events are recorded.
func RestoreOrder(
	id kernel.UUID,
	items []Item,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
		o.setStatus(status),
		o.setTimestamps(createdAt, updatedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate reports whether o was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Items returns a copy of the order lines; changing it does not affect o.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order last changed state.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Approve moves a Pending order to Approved. From any other state it returns
// an errs.StateTransitionIsInvalidError and leaves o unchanged.
func (o *Order) Approve() error {
	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.transition(newStatus, EventOrderApproved)
	return nil
}

// Cancel moves a Pending order to Cancelled. From any other state it returns
// an errs.StateTransitionIsInvalidError and leaves o unchanged.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.transition(newStatus, EventOrderCancelled)
	return nil
}

// Snapshot returns the current state as a detached value.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:        o.id,
		Status:    o.status,
		Items:     o.Items(),
		CreatedAt: o.createdAt,
		UpdatedAt: o.updatedAt,
	}
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []Event {
	return slices.Clone(o.events)
}

// ClearDomainEvents drops recorded events once they have been handed off.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) transition(status Status, eventType EventType) {
	// updatedAt must strictly advance even when the clock has not ticked.
	ts := now()
	if !ts.After(o.updatedAt) {
		ts = o.updatedAt.Add(timestampPrecision)
	}

	o.status = status
	o.updatedAt = ts
	o.record(eventType, ts)
}

func (o *Order) record(eventType EventType, at time.Time) {
	o.events = append(o.events, Event{
		ID:         kernel.NewUUID(),
		Type:       eventType,
		OrderID:    o.id,
		Status:     o.status,
		OccurredAt: at,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if items == nil {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("status", err)
	}
	o.status = status
	return nil
}

func (o *Order) setTimestamps(createdAt, updatedAt time.Time) error {
	var createdErr, updatedErr error
	if createdAt.IsZero() {
		createdErr = errs.NewValueIsRequiredError("createdAt")
	}
	if updatedAt.IsZero() {
		updatedErr = errs.NewValueIsRequiredError("updatedAt")
	}
	if err := errors.Join(createdErr, updatedErr); err != nil {
		return err
	}

	o.createdAt = createdAt.UTC()
	o.updatedAt = updatedAt.UTC()
	return nil
}
