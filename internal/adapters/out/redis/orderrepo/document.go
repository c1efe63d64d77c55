// Package orderrepo stores orders in Redis as one JSON document per order,
// plus a set of all order ids for listing.
package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

type orderDocument struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"`
	Items     []itemDocument `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type itemDocument struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func fromDomain(aggregate *order.Order) orderDocument {
	items := aggregate.Items()
	docItems := make([]itemDocument, 0, len(items))
	for _, item := range items {
		docItems = append(docItems, itemDocument{Name: item.Name(), Quantity: item.Quantity()})
	}

	return orderDocument{
		ID:        aggregate.ID().String(),
		Status:    aggregate.Status().String(),
		Items:     docItems,
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

func toDomain(doc orderDocument) (*order.Order, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(doc.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(doc.Items))
	for _, line := range doc.Items {
		item, itemErr := order.NewItem(line.Name, line.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, items, status, doc.CreatedAt.UTC(), doc.UpdatedAt.UTC())
}
