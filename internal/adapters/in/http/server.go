package http

import (
	"context"
	"net/http"

	"ordersapi/internal/core/application/usecases/commands"
	"ordersapi/internal/core/application/usecases/queries"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type UpdateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
}

type DeleteOrderHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
}

type ShipCompleteHandler interface {
	Handle(ctx context.Context, cmd commands.ShipCompleteCommand) (kernel.UUID, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
}

type CountOrdersHandler interface {
	Handle(ctx context.Context, query queries.CountOrdersQuery) (int64, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}

type GetCustomerOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetCustomerOrdersQuery) ([]queries.OrderView, error)
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateOrder       CreateOrderHandler
	UpdateOrder       UpdateOrderHandler
	DeleteOrder       DeleteOrderHandler
	ShipComplete      ShipCompleteHandler
	ListOrders        ListOrdersHandler
	CountOrders       CountOrdersHandler
	GetOrder          GetOrderHandler
	GetCustomerOrders GetCustomerOrdersHandler
}

// Server translates HTTP requests into commands and queries.
// Listings are scoped to the store the server was created for.
type Server struct {
	handlers Handlers
	storeID  int
	logger   *zap.Logger
}

func NewServer(handlers Handlers, storeID int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{handlers: handlers, storeID: storeID, logger: logger}
}

// Register mounts the order routes under /api/orders. The middlewares apply to
// those routes only; /health stays open.
func (s *Server) Register(e *echo.Echo, middlewares ...echo.MiddlewareFunc) {
	e.GET("/health", s.Health)

	orders := e.Group("/api/orders", middlewares...)
	orders.GET("", s.ListOrders)
	orders.POST("", s.CreateOrder)
	orders.GET("/count", s.CountOrders)
	orders.GET("/customer/:customer_id", s.GetCustomerOrders)
	orders.POST("/shipcomplete", s.ShipComplete)
	orders.GET("/:id", s.GetOrder)
	orders.PUT("/:id", s.UpdateOrder)
	orders.DELETE("/:id", s.DeleteOrder)
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, malformedBodyError{cause: err})
	}

	cmd, err := req.toCreateCommand()
	if err != nil {
		return s.fail(c, err)
	}

	placed, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, ordersResponse{Orders: []orderResponse{fromOrder(placed)}})
}

// UpdateOrder handles PUT /api/orders/{id}.
func (s *Server) UpdateOrder(c echo.Context) error {
	id, err := s.pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, malformedBodyError{cause: err})
	}

	cmd, err := req.toUpdateCommand(id)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, ordersResponse{Orders: []orderResponse{fromOrder(updated)}})
}

// DeleteOrder handles DELETE /api/orders/{id}.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := s.pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, struct{}{})
}

// ShipComplete handles POST /api/orders/shipcomplete.
func (s *Server) ShipComplete(c echo.Context) error {
	var req shipCompleteRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, malformedBodyError{cause: err})
	}

	cmd, err := req.toCommand()
	if err != nil {
		return s.fail(c, err)
	}

	shipmentID, err := s.handlers.ShipComplete.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, shipmentResponse{Shipment: shipmentBody{ShipmentID: shipmentID.String()}})
}

// ListOrders handles GET /api/orders.
func (s *Server) ListOrders(c echo.Context) error {
	filter, err := orderFilter(c, s.storeID)
	if err != nil {
		return s.fail(c, err)
	}
	limit, page, err := paging(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListOrdersQuery(filter, limit, page)
	if err != nil {
		return s.fail(c, err)
	}

	views, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, fromViews(views))
}

// CountOrders handles GET /api/orders/count.
func (s *Server) CountOrders(c echo.Context) error {
	filter, err := orderFilter(c, s.storeID)
	if err != nil {
		return s.fail(c, err)
	}

	count, err := s.handlers.CountOrders.Handle(c.Request().Context(), queries.NewCountOrdersQuery(filter))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, countResponse{Count: count})
}

// GetOrder handles GET /api/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := s.pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, ordersResponse{Orders: []orderResponse{fromView(view)}})
}

// GetCustomerOrders handles GET /api/orders/customer/{customer_id}.
func (s *Server) GetCustomerOrders(c echo.Context) error {
	customerID, err := s.pathID(c, "customer_id")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID, s.storeID)
	if err != nil {
		return s.fail(c, err)
	}

	views, err := s.handlers.GetCustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, fromViews(views))
}

func (s *Server) pathID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := parseID(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewFieldError(name, "invalid "+name)
	}
	return id, nil
}

func (s *Server) fail(c echo.Context, err error) error {
	return writeError(c, s.logger, err)
}
