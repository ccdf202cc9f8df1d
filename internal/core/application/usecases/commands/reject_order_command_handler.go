package commands

import (
	"context"
	"time"

	"takeout/internal/core/ports"
)

// RejectOrderCommandHandler declines an order that is awaiting merchant
// confirmation. Rejected orders end up Cancelled with the rejection reason
// recorded, and the customer's payment is refunded first: a failed refund
// aborts the rejection so money is never kept for food that will not arrive.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     OrderLocker
	gateway    ports.PaymentGateway
}

// NewRejectOrderCommandHandler creates a handler for merchant rejections.
func NewRejectOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locker OrderLocker,
	gateway ports.PaymentGateway,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		gateway:    gateway,
	}
}

// Handle processes the rejection. Only orders in AwaitingConfirmation can be
// rejected; anything else fails with a *order.StatusConflictError.
func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locker.Lock(cmd.OrderID())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// Fail the status guard before touching the gateway so a refund is never
	// issued for an order that cannot be rejected.
	if _, err = aggregate.Status().Reject(); err != nil {
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

	patch, err := aggregate.Reject(cmd.Reason(), refunded, now)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, cmd.OrderID(), patch); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
