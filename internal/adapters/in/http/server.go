// Package http exposes the order operations over echo: customer endpoints,
// merchant endpoints, the payment gateway callback, and the websocket upgrade
// for merchant notifications.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/application/usecases/queries"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const defaultPageSize = 10

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler    commands.SubmitOrderCommandHandler
	payOrderHandler       commands.PayOrderCommandHandler
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	confirmOrderHandler   commands.ConfirmOrderCommandHandler
	rejectOrderHandler    commands.RejectOrderCommandHandler
	dispatchOrderHandler  commands.DispatchOrderCommandHandler
	completeOrderHandler  commands.CompleteOrderCommandHandler

	// Query handlers
	getOrderHandler           queries.GetOrderQueryHandler
	getUserOrdersHandler      queries.GetUserOrdersQueryHandler
	getOrderStatisticsHandler queries.GetOrderStatisticsQueryHandler

	// wsHandler upgrades GET /ws connections; supplied by the notifier hub.
	wsHandler http.HandlerFunc
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	payOrderHandler commands.PayOrderCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getUserOrdersHandler queries.GetUserOrdersQueryHandler,
	getOrderStatisticsHandler queries.GetOrderStatisticsQueryHandler,
	wsHandler http.HandlerFunc,
) *Server {
	return &Server{
		submitOrderHandler:        submitOrderHandler,
		payOrderHandler:           payOrderHandler,
		confirmPaymentHandler:     confirmPaymentHandler,
		cancelOrderHandler:        cancelOrderHandler,
		confirmOrderHandler:       confirmOrderHandler,
		rejectOrderHandler:        rejectOrderHandler,
		dispatchOrderHandler:      dispatchOrderHandler,
		completeOrderHandler:      completeOrderHandler,
		getOrderHandler:           getOrderHandler,
		getUserOrdersHandler:      getUserOrdersHandler,
		getOrderStatisticsHandler: getOrderStatisticsHandler,
		wsHandler:                 wsHandler,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	// Customer endpoints
	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/cancel", s.CancelOrder)
	api.POST("/payments", s.PayOrder)
	api.POST("/payments/callback", s.PaymentCallback)
	api.GET("/users/:userID/orders", s.GetUserOrders)

	// Merchant endpoints
	admin := api.Group("/admin")
	admin.PUT("/orders/:id/confirm", s.ConfirmOrder)
	admin.PUT("/orders/:id/rejection", s.RejectOrder)
	admin.PUT("/orders/:id/delivery", s.DispatchOrder)
	admin.PUT("/orders/:id/complete", s.CompleteOrder)
	admin.GET("/orders/statistics", s.GetOrderStatistics)

	e.GET("/ws", echo.WrapHandler(s.wsHandler))
}

// SubmitOrder handles POST /api/v1/orders - turns the user's cart into an order.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req SubmitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	amount, err := kernel.NewMoneyFromString(req.Amount)
	if err != nil {
		return badRequest(ctx, "invalid amount: "+err.Error())
	}

	cmd, err := commands.NewSubmitOrderCommand(req.UserID, req.AddressID, amount, req.Remark)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, SubmitOrderResponse{
		OrderID:   result.OrderID,
		Number:    result.Number,
		Amount:    result.Amount.String(),
		OrderTime: result.OrderTime,
	})
}

// PayOrder handles POST /api/v1/payments - requests a prepayment from the gateway.
func (s *Server) PayOrder(ctx echo.Context) error {
	var req PayOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewPayOrderCommand(req.OrderNumber, req.UserID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	intent, err := s.payOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, intent)
}

// PaymentCallback handles POST /api/v1/payments/callback - the gateway's
// payment-success notification. Marks the order paid and alerts merchants.
func (s *Server) PaymentCallback(ctx echo.Context) error {
	var req PaymentCallbackRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewConfirmPaymentCommand(req.OrderNumber, req.UserID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CancelOrder handles PUT /api/v1/orders/:id/cancel - user-initiated cancellation.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req CancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.UserID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmOrder handles PUT /api/v1/admin/orders/:id/confirm - merchant accepts.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles PUT /api/v1/admin/orders/:id/rejection - merchant declines.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req RejectOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchOrder handles PUT /api/v1/admin/orders/:id/delivery - order leaves the kitchen.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles PUT /api/v1/admin/orders/:id/complete - order delivered.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id - order details with line items.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(resp))
}

// GetUserOrders handles GET /api/v1/users/:userID/orders - paged order history,
// newest first, optionally filtered by ?status=.
func (s *Server) GetUserOrders(ctx echo.Context) error {
	userID, err := strconv.ParseInt(ctx.Param("userID"), 10, 64)
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "invalid status filter")
		}
		parsed := order.Status(code)
		if err := parsed.Validate(); err != nil {
			return badRequest(ctx, err.Error())
		}
		status = &parsed
	}

	page := queryInt(ctx, "page", 1)
	pageSize := queryInt(ctx, "pageSize", defaultPageSize)

	query, err := queries.NewGetUserOrdersQuery(userID, status, page, pageSize)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.getUserOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	orders := make([]Order, len(resp.Orders))
	for i := range resp.Orders {
		orders[i] = toOrder(&resp.Orders[i])
	}

	return ctx.JSON(http.StatusOK, OrderPage{Total: resp.Total, Orders: orders})
}

// GetOrderStatistics handles GET /api/v1/admin/orders/statistics - counts per
// active status for the merchant dashboard.
func (s *Server) GetOrderStatistics(ctx echo.Context) error {
	resp, err := s.getOrderStatisticsHandler.Handle(
		ctx.Request().Context(), queries.NewGetOrderStatisticsQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatistics{
		AwaitingConfirmation: resp.AwaitingConfirmation,
		Confirmed:            resp.Confirmed,
		OutForDelivery:       resp.OutForDelivery,
	})
}

func pathID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid order id")
	}
	return id, nil
}

func queryInt(ctx echo.Context, name string, fallback int) int {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps application errors to HTTP statuses: missing objects to
// 404, empty cart to 400, lifecycle and double-payment conflicts to 409,
// gateway failures to 502, everything else to 500.
func respondError(ctx echo.Context, err error) error {
	var conflictErr *order.StatusConflictError
	var gatewayErr *ports.GatewayError

	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, commands.ErrCartIsEmpty):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, ports.ErrAlreadyPaid):
		status = http.StatusConflict
		message = err.Error()
	case errors.As(err, &conflictErr):
		status = http.StatusConflict
		message = err.Error()
	case errors.As(err, &gatewayErr):
		status = http.StatusBadGateway
		message = err.Error()
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}
