package commands_test

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if echo, ok := args.Get(0).(func(*order.Order) *order.Order); ok {
		return echo(o), args.Error(1)
	}
	saved, _ := args.Get(0).(*order.Order)
	return saved, args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, bool, error) {
	args := m.Called(ctx, id)
	found, _ := args.Get(0).(*order.Order)
	return found, args.Bool(1), args.Error(2)
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	all, _ := args.Get(0).([]*order.Order)
	return all, args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...order.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// savedAsIs makes a mocked Save return the order it was given.
func savedAsIs(o *order.Order) *order.Order { return o }

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func eventsOfType(eventType order.EventType) any {
	return mock.MatchedBy(func(events []order.Event) bool {
		return len(events) == 1 && events[0].Type == eventType
	})
}

func pendingOrder() *order.Order {
	item, _ := order.NewItem("Syringe", 10)
	o, _ := order.NewOrder([]order.Item{item})
	o.ClearDomainEvents()
	return o
}
