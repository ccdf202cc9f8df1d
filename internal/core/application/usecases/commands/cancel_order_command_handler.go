package commands

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order at the customer's request.
// Cancellation is allowed while the order is still PendingPayment or
// AwaitingConfirmation; later stages require contacting the merchant and fail
// with a *order.StatusConflictError.
//
// When the order was already paid, the payment gateway refund runs before the
// status write: if the refund fails, the order keeps its current status and
// the customer can retry.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     OrderLocker
	gateway    ports.PaymentGateway
}

// NewCancelOrderCommandHandler creates a handler for customer cancellations.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locker OrderLocker,
	gateway ports.PaymentGateway,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		gateway:    gateway,
	}
}

// Handle processes the cancellation.
//
// Orders belonging to another user are reported as not found rather than
// forbidden, so order ids cannot be probed across accounts.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if aggregate.UserID() != cmd.UserID() {
		return errs.NewObjectNotFoundError("orderID", cmd.OrderID())
	}

	unlock := h.locker.Lock(cmd.OrderID())
	defer unlock()

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err = uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// Fail the status guard before touching the gateway so a refund is never
	// issued for an order that cannot be cancelled.
	if _, err = aggregate.Status().Cancel(); err != nil {
		return err
	}

	now := time.Now()
	refunded := false
	if aggregate.RequiresRefund() {
		if _, err = h.gateway.Refund(ctx, ports.RefundRequest{
			OrderNumber:  aggregate.Number(),
			RefundNumber: aggregate.Number(),
			RefundAmount: aggregate.Amount(),
			TotalAmount:  aggregate.Amount(),
		}); err != nil {
			return err
		}
		refunded = true
	}

	patch, err := aggregate.Cancel(order.CancelReasonUser, refunded, now)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, cmd.OrderID(), patch); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
