package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"takeout/internal/core/ports"
)

// ConfirmPaymentCommandHandler applies the gateway's payment-success callback:
// moves the order from PendingPayment to AwaitingConfirmation, stamps the
// checkout time, and announces the new order to connected merchant clients.
//
// Callbacks may be delivered more than once; a repeated confirmation fails the
// status guard with a *order.StatusConflictError and changes nothing, so the
// notification is sent at most once per order.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     OrderLocker
	publisher  ports.NotificationPublisher
	logger     *slog.Logger
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	locker OrderLocker,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		publisher:  publisher,
		logger:     logger.With("component", "confirm-payment"),
	}
}

// Handle processes the payment confirmation.
//
// The order is re-read under its per-order lock so a concurrent cancellation
// and a payment callback cannot both win: whichever transition commits first
// is observed by the other, which then fails the status guard.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	aggregate, err := uow.OrderRepository().GetByNumberAndUser(ctx, cmd.OrderNumber(), cmd.UserID())
	if err != nil {
		return err
	}

	unlock := h.locker.Lock(aggregate.ID())
	defer unlock()

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err = uow.OrderRepository().Get(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	patch, err := aggregate.ConfirmPayment(time.Now())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate.ID(), patch); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notification := ports.Notification{
		Type:    ports.NotificationNewOrder,
		OrderID: aggregate.ID(),
		Content: fmt.Sprintf("order number: %s", aggregate.Number()),
	}
	if err = h.publisher.Broadcast(ctx, notification); err != nil {
		h.logger.Warn("failed to broadcast new order notification",
			"orderID", aggregate.ID(), "error", err)
	}

	return nil
}
