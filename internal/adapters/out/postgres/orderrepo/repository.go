package orderrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository on PostgreSQL.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository over db. The schema is created
// by Migrate.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Migrate creates or updates the order tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrderDTO{}, &OrderItemDTO{})
}

// Save upserts the order row and replaces its item rows in one transaction.
func (r *GormOrderRepository) Save(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&dto).Error; err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", dto.ID).Delete(&OrderItemDTO{}).Error; err != nil {
			return err
		}

		return tx.Create(&dto.Items).Error
	})
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// FindByID returns (nil, false, nil) when the order does not exist.
func (r *GormOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, bool, error) {
	if err := id.Validate(); err != nil {
		return nil, false, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, false, err
	}
	return aggregate, true, nil
}

// FindAll returns all orders, oldest first.
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
