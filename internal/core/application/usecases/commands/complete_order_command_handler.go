package commands

import (
	"context"
	"time"
)

// CompleteOrderCommandHandler moves an order from OutForDelivery to Completed
// and stamps the delivery time.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     OrderLocker
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory, locker OrderLocker) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{uowFactory: uowFactory, locker: locker}
}

// Handle processes the completion. Orders in any other status fail with a
// *order.StatusConflictError.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	patch, err := aggregate.Complete(time.Now())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, cmd.OrderID(), patch); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
