package commands

import (
	"context"
)

// ConfirmOrderCommandHandler moves an order from AwaitingConfirmation to
// Confirmed, signalling that the kitchen has accepted it.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     OrderLocker
}

// NewConfirmOrderCommandHandler creates a handler for merchant order acceptance.
func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, locker OrderLocker) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{uowFactory: uowFactory, locker: locker}
}

// Handle processes the acceptance. Orders in any other status fail with a
// *order.StatusConflictError.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
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

	patch, err := aggregate.Confirm()
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, cmd.OrderID(), patch); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
