package order

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// EventType names a domain event on the wire.
type EventType string

const (
	EventOrderPlaced    EventType = "order.placed"
	EventOrderApproved  EventType = "order.approved"
	EventOrderCancelled EventType = "order.cancelled"
)

// Event is a fact recorded by the Order aggregate when it is placed or changes
// state. Events stay on the aggregate until the application layer has
// persisted it and handed them to a publisher.
type Event struct {
	ID         kernel.UUID
	Type       EventType
	OrderID    kernel.UUID
	Status     Status
	OccurredAt time.Time
}
