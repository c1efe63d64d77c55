// Package orderrepo persists order aggregates in PostgreSQL through GORM.
// An order is one row in "orders" plus one row per line in "order_items".
package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the "orders" row. Status is stored by name so the table stays
// readable without the Go enum.
type OrderDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Status    string         `gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time      `gorm:"type:timestamptz;not null;index"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;not null"`
	Items     []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Position keeps the lines in the order they
// were placed.
type OrderItemDTO struct {
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"type:int;primaryKey;autoIncrement:false"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Quantity int       `gorm:"type:int;not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain maps an order aggregate to its rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	items := aggregate.Items()

	dtoItems := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		dtoItems = append(dtoItems, OrderItemDTO{
			OrderID:  orderID,
			Position: i,
			Name:     item.Name(),
			Quantity: item.Quantity(),
		})
	}

	return OrderDTO{
		ID:        orderID,
		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		Items:     dtoItems,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. Items must already be
// sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, line := range dto.Items {
		item, itemErr := order.NewItem(line.Name, line.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, items, status, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
