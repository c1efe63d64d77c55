package http

import (
	"log/slog"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler   commands.PlaceOrderCommandHandler
	approveOrderHandler commands.ApproveOrderCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler     queries.GetOrderQueryHandler
	getAllOrdersHandler queries.GetAllOrdersQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	approveOrderHandler commands.ApproveOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		placeOrderHandler:   placeOrderHandler,
		approveOrderHandler: approveOrderHandler,
		cancelOrderHandler:  cancelOrderHandler,
		getOrderHandler:     getOrderHandler,
		getAllOrdersHandler: getAllOrdersHandler,
		logger:              logger.With("component", "http_server"),
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// PlaceOrder handles POST /api/orders - places a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return s.writeError(ctx, http.StatusBadRequest, "Malformed request body", nil)
	}

	items := make([]commands.PlaceOrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, commands.PlaceOrderItem{Name: item.Name, Quantity: item.Quantity})
	}

	cmd, err := commands.NewPlaceOrderCommand(items)
	if err != nil {
		return s.handleError(ctx, err)
	}

	snapshot, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.handleError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrder(snapshot))
}

// ApproveOrder handles PUT /api/orders/{orderId}/approve.
func (s *Server) ApproveOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return s.handleError(ctx, err)
	}

	cmd, err := commands.NewApproveOrderCommand(id)
	if err != nil {
		return s.handleError(ctx, err)
	}

	if err = s.approveOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.handleError(ctx, err)
	}

	return s.respondWithOrder(ctx, id)
}

// CancelOrder handles PUT /api/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return s.handleError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return s.handleError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.handleError(ctx, err)
	}

	return s.respondWithOrder(ctx, id)
}

// GetOrder handles GET /api/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return s.handleError(ctx, err)
	}

	return s.respondWithOrder(ctx, id)
}

// GetOrders handles GET /api/orders - retrieves all orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	snapshots, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return s.handleError(ctx, err)
	}

	response := make([]servers.Order, 0, len(snapshots))
	for _, snapshot := range snapshots {
		response = append(response, toOrder(snapshot))
	}

	return ctx.JSON(http.StatusOK, response)
}

// respondWithOrder re-reads the order so the response shows the stored state.
func (s *Server) respondWithOrder(ctx echo.Context, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.handleError(ctx, err)
	}

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.handleError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(snapshot))
}

func toOrder(snapshot order.Snapshot) servers.Order {
	items := make([]servers.OrderItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, servers.OrderItem{Name: item.Name(), Quantity: item.Quantity()})
	}

	return servers.Order{
		Id:        snapshot.ID.Bytes(),
		Status:    servers.OrderStatus(snapshot.Status.String()),
		Items:     items,
		CreatedAt: snapshot.CreatedAt,
		UpdatedAt: snapshot.UpdatedAt,
	}
}
