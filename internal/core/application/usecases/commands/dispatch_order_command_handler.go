package commands

import (
	"context"
)

// DispatchOrderCommandHandler moves an order from Confirmed to OutForDelivery.
type DispatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     OrderLocker
}

// NewDispatchOrderCommandHandler creates a handler for order dispatch.
func NewDispatchOrderCommandHandler(uowFactory OrderUoWFactory, locker OrderLocker) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{uowFactory: uowFactory, locker: locker}
}

// Handle processes the dispatch. Orders in any other status fail with a
// *order.StatusConflictError.
func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
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

	patch, err := aggregate.Dispatch()
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, cmd.OrderID(), patch); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
