package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"purchasing/internal/core/application/usecases/commands"
	"purchasing/internal/core/application/usecases/queries"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const graphvizContentType = "text/vnd.graphviz; charset=UTF-8"

// Server exposes the order lifecycle over HTTP.
// It coordinates between echo handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	payOrderHandler    commands.PayOrderCommandHandler
	fireTriggerHandler commands.FireTriggerCommandHandler

	// Query handlers
	getOrderHandler       queries.GetOrderQueryHandler
	getOpenOrdersHandler  queries.GetOpenOrdersQueryHandler
	quoteDiscountHandler  queries.QuoteDiscountQueryHandler
	lifecycleGraphHandler queries.GetLifecycleGraphQueryHandler

	defaultEngine order.Engine
	logger        *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
// defaultEngine is used when a create request does not name one.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	payOrderHandler commands.PayOrderCommandHandler,
	fireTriggerHandler commands.FireTriggerCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	quoteDiscountHandler queries.QuoteDiscountQueryHandler,
	lifecycleGraphHandler queries.GetLifecycleGraphQueryHandler,
	defaultEngine order.Engine,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		payOrderHandler:       payOrderHandler,
		fireTriggerHandler:    fireTriggerHandler,
		getOrderHandler:       getOrderHandler,
		getOpenOrdersHandler:  getOpenOrdersHandler,
		quoteDiscountHandler:  quoteDiscountHandler,
		lifecycleGraphHandler: lifecycleGraphHandler,
		defaultEngine:         defaultEngine,
		logger:                logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	engine := s.defaultEngine
	if newOrder.Engine != "" {
		parsed, err := order.ParseEngine(newOrder.Engine)
		if err != nil {
			return s.writeError(ctx, err)
		}
		engine = parsed
	}

	status := order.Pending
	if newOrder.Status != "" {
		parsed, err := order.ParseStatus(newOrder.Status)
		if err != nil {
			return s.writeError(ctx, err)
		}
		status = parsed
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, engine, status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusCreated, orderID)
}

// GetOrders handles GET /api/v1/orders - lists open orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetOpenOrdersQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// PayOrder handles POST /api/v1/orders/:id/pay.
func (s *Server) PayOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewPayOrderCommand(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.payOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	return s.fire(ctx, order.TriggerConfirm)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.fire(ctx, order.TriggerCancel)
}

// GetLifecycleGraph handles GET /api/v1/orders/graph.
func (s *Server) GetLifecycleGraph(ctx echo.Context) error {
	graph, err := s.lifecycleGraphHandler.Handle(ctx.Request().Context(), queries.NewGetLifecycleGraphQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.Blob(http.StatusOK, graphvizContentType, []byte(graph))
}

// QuoteDiscount handles GET /api/v1/discounts/quote?price=&code=.
func (s *Server) QuoteDiscount(ctx echo.Context) error {
	rawPrice := ctx.QueryParam("price")
	if rawPrice == "" {
		return s.writeError(ctx, errs.NewValueIsRequiredError("price"))
	}

	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("price", err))
	}

	quote, err := s.quoteDiscountHandler.Handle(
		ctx.Request().Context(),
		queries.NewQuoteDiscountQuery(price, ctx.QueryParam("code")),
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DiscountQuote{
		Price: quote.Price,
		Code:  quote.Code,
		Total: quote.Total,
	})
}

func (s *Server) fire(ctx echo.Context, trigger order.Trigger) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewFireTriggerCommand(orderID, trigger)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.fireTriggerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

func (s *Server) respondWithOrder(ctx echo.Context, code int, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(code, toOrder(o))
}
