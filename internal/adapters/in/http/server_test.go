package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"logistics/api"
	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/memory/orderrepo"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/generated/servers"
	"logistics/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...order.Event) error { return nil }

func newRouter(t *testing.T, repo ports.OrderRepository, m *metrics.ServerMetrics) *echo.Echo {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	var publisher ports.EventPublisher = nopPublisher{}

	server := httpadapter.NewServer(
		commands.NewPlaceOrderCommandHandler(repo, publisher, logger),
		commands.NewApproveOrderCommandHandler(repo, publisher, logger),
		commands.NewCancelOrderCommandHandler(repo, publisher, logger),
		queries.NewGetOrderQueryHandler(repo, logger),
		queries.NewGetAllOrdersQueryHandler(repo, logger),
		logger,
	)

	spec, err := api.Load(context.Background())
	require.NoError(t, err)

	e, err := httpadapter.NewRouter(server, httpadapter.RouterOptions{
		Logger:  logger,
		Metrics: m,
		Spec:    spec,
	})
	require.NoError(t, err)
	return e
}

type OrderAPITestSuite struct {
	suite.Suite
	router  *echo.Echo
	metrics *metrics.ServerMetrics
}

func (s *OrderAPITestSuite) SetupTest() {
	s.metrics = metrics.NewServerMetrics("test", nil)
	s.router = newRouter(s.T(), orderrepo.NewMemoryOrderRepository(), s.metrics)
}

func (s *OrderAPITestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *OrderAPITestSuite) decodeOrder(rec *httptest.ResponseRecorder) servers.Order {
	var o servers.Order
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &o), rec.Body.String())
	return o
}

func (s *OrderAPITestSuite) decodeError(rec *httptest.ResponseRecorder) servers.Error {
	var e servers.Error
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &e), rec.Body.String())
	s.Equal(rec.Code, e.Status)
	s.Equal(http.StatusText(rec.Code), e.Error)
	s.False(e.Timestamp.IsZero())
	return e
}

func (s *OrderAPITestSuite) placeOrder(body string) servers.Order {
	rec := s.do(http.MethodPost, "/api/orders", body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return s.decodeOrder(rec)
}

func (s *OrderAPITestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
	s.Len(rec.Header().Get(echo.HeaderXRequestID), 8)
}

func (s *OrderAPITestSuite) TestOrderLifecycle_ApproveThenCancelConflicts() {
	placed := s.placeOrder(`{"items":[{"name":"Syringe","quantity":10},{"name":"Bandage","quantity":20}]}`)
	s.Equal(servers.PENDING, placed.Status)
	s.Require().Len(placed.Items, 2)
	s.Equal(servers.OrderItem{Name: "Syringe", Quantity: 10}, placed.Items[0])
	s.Equal(placed.CreatedAt, placed.UpdatedAt)

	rec := s.do(http.MethodPut, "/api/orders/"+placed.Id.String()+"/approve", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	approved := s.decodeOrder(rec)
	s.Equal(servers.APPROVED, approved.Status)
	s.True(approved.UpdatedAt.After(placed.UpdatedAt))

	rec = s.do(http.MethodPut, "/api/orders/"+placed.Id.String()+"/cancel", "")
	s.Equal(http.StatusConflict, rec.Code)
	body := s.decodeError(rec)
	s.Contains(body.Message, "APPROVED")

	rec = s.do(http.MethodGet, "/api/orders/"+placed.Id.String(), "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(servers.APPROVED, s.decodeOrder(rec).Status)
}

func (s *OrderAPITestSuite) TestOrderLifecycle_CancelThenApproveConflicts() {
	placed := s.placeOrder(`{"items":[{"name":"Mask","quantity":100}]}`)

	rec := s.do(http.MethodPut, "/api/orders/"+placed.Id.String()+"/cancel", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(servers.CANCELLED, s.decodeOrder(rec).Status)

	rec = s.do(http.MethodPut, "/api/orders/"+placed.Id.String()+"/approve", "")
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *OrderAPITestSuite) TestGetOrders() {
	rec := s.do(http.MethodGet, "/api/orders", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())

	first := s.placeOrder(`{"items":[{"name":"Item1","quantity":10}]}`)
	second := s.placeOrder(`{"items":[{"name":"Item2","quantity":20}]}`)

	rec = s.do(http.MethodGet, "/api/orders", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var all []servers.Order
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &all))
	s.ElementsMatch([]servers.Order{first, second}, all)
}

func (s *OrderAPITestSuite) TestGetOrder_NotFound() {
	id := kernel.NewUUID().String()

	rec := s.do(http.MethodGet, "/api/orders/"+id, "")

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(s.decodeError(rec).Message, id)
}

func (s *OrderAPITestSuite) TestTransitions_NotFound() {
	id := kernel.NewUUID().String()

	s.Equal(http.StatusNotFound, s.do(http.MethodPut, "/api/orders/"+id+"/approve", "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPut, "/api/orders/"+id+"/cancel", "").Code)
}

func (s *OrderAPITestSuite) TestInvalidOrderID() {
	for _, id := range []string{
		"not-a-uuid",
		"550e8400e29b41d4a716446655440000",
		"{550e8400-e29b-41d4-a716-446655440000}",
		"00000000-0000-0000-0000-000000000000",
	} {
		rec := s.do(http.MethodGet, "/api/orders/"+id, "")

		s.Equal(http.StatusBadRequest, rec.Code, id)
		s.Equal("Invalid order id format", s.decodeError(rec).Message, id)
	}
}

func (s *OrderAPITestSuite) TestPlaceOrder_ValidationErrors() {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"empty items", `{"items":[]}`, []string{"items"}},
		{"blank name", `{"items":[{"name":"  ","quantity":1}]}`, []string{"items[0].name"}},
		{"zero quantity", `{"items":[{"name":"Glove","quantity":0}]}`, []string{"items[0].quantity"}},
		{
			"several lines",
			`{"items":[{"name":"","quantity":1},{"name":"Glove","quantity":-3}]}`,
			[]string{"items[0].name", "items[1].quantity"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodPost, "/api/orders", tt.body)

			s.Require().Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
			body := s.decodeError(rec)
			s.Require().NotNil(body.Details)
			for _, field := range tt.fields {
				s.Contains(*body.Details, field)
			}
		})
	}
}

func (s *OrderAPITestSuite) TestPlaceOrder_SchemaErrors() {
	for _, body := range []string{
		`{}`,
		`{"items":[{"name":"Glove","quantity":"ten"}]}`,
		`{"items":[{"quantity":1}]}`,
		`not json`,
	} {
		rec := s.do(http.MethodPost, "/api/orders", body)

		s.Equal(http.StatusBadRequest, rec.Code, body)
		s.decodeError(rec)
	}
}

func (s *OrderAPITestSuite) TestUnknownRoute() {
	rec := s.do(http.MethodGet, "/api/unknown", "")

	s.Equal(http.StatusNotFound, rec.Code)
	s.decodeError(rec)
}

func (s *OrderAPITestSuite) TestMetricsEndpoint() {
	s.placeOrder(`{"items":[{"name":"Mask","quantity":1}]}`)

	rec := s.do(http.MethodGet, "/metrics", "")

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(),
		`logistics_test_http_requests_total{handler="/api/orders",method="POST",status="201"} 1`)
}

func (s *OrderAPITestSuite) TestSwaggerDocument() {
	rec := s.do(http.MethodGet, "/swagger/doc.json", "")

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"operationId":"PlaceOrder"`)
}

func TestOrderAPITestSuite(t *testing.T) {
	suite.Run(t, new(OrderAPITestSuite))
}

type brokenRepository struct{}

func (brokenRepository) Save(context.Context, *order.Order) (*order.Order, error) {
	return nil, errors.New("disk on fire")
}

func (brokenRepository) FindByID(context.Context, kernel.UUID) (*order.Order, bool, error) {
	return nil, false, errors.New("disk on fire")
}

func (brokenRepository) FindAll(context.Context) ([]*order.Order, error) {
	return nil, errors.New("disk on fire")
}

func TestRepositoryFailureIsInternalError(t *testing.T) {
	router := newRouter(t, brokenRepository{}, nil)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/orders", nil),
		httptest.NewRequest(http.MethodGet, "/api/orders/"+kernel.NewUUID().String(), nil),
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "disk on fire")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"items":[{"name":"Mask","quantity":1}]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
