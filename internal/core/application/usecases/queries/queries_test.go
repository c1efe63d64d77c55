package queries_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"logistics/internal/adapters/out/memory/orderrepo"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderQueriesTestSuite struct {
	suite.Suite
	repo     *orderrepo.MemoryOrderRepository
	getOrder queries.GetOrderQueryHandler
	getAll   queries.GetAllOrdersQueryHandler
}

func (s *OrderQueriesTestSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	s.repo = orderrepo.NewMemoryOrderRepository()
	s.getOrder = queries.NewGetOrderQueryHandler(s.repo, logger)
	s.getAll = queries.NewGetAllOrdersQueryHandler(s.repo, logger)
}

func (s *OrderQueriesTestSuite) store(name string, quantity int) *order.Order {
	item, err := order.NewItem(name, quantity)
	s.Require().NoError(err)
	o, err := order.NewOrder([]order.Item{item})
	s.Require().NoError(err)
	_, err = s.repo.Save(s.T().Context(), o)
	s.Require().NoError(err)
	return o
}

func (s *OrderQueriesTestSuite) TestGetOrder_Existing() {
	stored := s.store("Mask", 100)
	query, err := queries.NewGetOrderQuery(stored.ID())
	s.Require().NoError(err)

	snapshot, err := s.getOrder.Handle(s.T().Context(), query)

	s.Require().NoError(err)
	s.Equal(stored.Snapshot(), snapshot)
}

func (s *OrderQueriesTestSuite) TestGetOrder_UnknownID() {
	id := kernel.NewUUID()
	query, err := queries.NewGetOrderQuery(id)
	s.Require().NoError(err)

	_, err = s.getOrder.Handle(s.T().Context(), query)

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
	var notFound *errs.ObjectNotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal(id.String(), notFound.ID)
}

func (s *OrderQueriesTestSuite) TestGetOrder_ReflectsLatestSave() {
	stored := s.store("Syringe", 10)
	s.Require().NoError(stored.Cancel())
	_, err := s.repo.Save(s.T().Context(), stored)
	s.Require().NoError(err)

	query, err := queries.NewGetOrderQuery(stored.ID())
	s.Require().NoError(err)
	snapshot, err := s.getOrder.Handle(s.T().Context(), query)

	s.Require().NoError(err)
	s.Equal(order.Cancelled, snapshot.Status)
	s.True(snapshot.UpdatedAt.After(snapshot.CreatedAt))
}

func (s *OrderQueriesTestSuite) TestGetAll_EmptyStore() {
	snapshots, err := s.getAll.Handle(s.T().Context(), queries.NewGetAllOrdersQuery())

	s.Require().NoError(err)
	s.NotNil(snapshots)
	s.Empty(snapshots)
}

func (s *OrderQueriesTestSuite) TestGetAll_ReturnsEveryOrder() {
	first := s.store("Syringe", 10)
	second := s.store("Bandage", 20)

	snapshots, err := s.getAll.Handle(s.T().Context(), queries.NewGetAllOrdersQuery())

	s.Require().NoError(err)
	s.ElementsMatch([]order.Snapshot{first.Snapshot(), second.Snapshot()}, snapshots)
}

func TestOrderQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesTestSuite))
}

type failingRepository struct {
	orderrepo.MemoryOrderRepository
	err error
}

func (r *failingRepository) FindByID(context.Context, kernel.UUID) (*order.Order, bool, error) {
	return nil, false, r.err
}

func (r *failingRepository) FindAll(context.Context) ([]*order.Order, error) {
	return nil, r.err
}

func TestQueryHandlers_RepositoryErrors(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &failingRepository{err: repoErr}
	logger := slog.New(slog.DiscardHandler)

	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	require.NoError(t, err)
	_, err = queries.NewGetOrderQueryHandler(repo, logger).Handle(t.Context(), query)
	require.ErrorIs(t, err, repoErr)

	_, err = queries.NewGetAllOrdersQueryHandler(repo, logger).Handle(t.Context(), queries.NewGetAllOrdersQuery())
	require.ErrorIs(t, err, repoErr)
}

func TestQueries_Construction(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	id := kernel.NewUUID()
	query, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)
	assert.Equal(t, id, query.OrderID())
	require.NoError(t, query.Validate())
	require.NoError(t, queries.NewGetAllOrdersQuery().Validate())

	require.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	require.ErrorIs(t, queries.GetAllOrdersQuery{}.Validate(), queries.ErrGetAllOrdersQueryIsNotConstructed)

	logger := slog.New(slog.DiscardHandler)
	repo := orderrepo.NewMemoryOrderRepository()
	_, err = queries.NewGetOrderQueryHandler(repo, logger).Handle(t.Context(), queries.GetOrderQuery{})
	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	_, err = queries.NewGetAllOrdersQueryHandler(repo, logger).Handle(t.Context(), queries.GetAllOrdersQuery{})
	require.ErrorIs(t, err, queries.ErrGetAllOrdersQueryIsNotConstructed)
}
