package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"takeout/internal/core/domain/model/order"
)

// CancelTimedOutOrdersCommandHandler cancels unpaid orders whose payment
// window has elapsed. Each order is cancelled in its own transaction under its
// own lock, so one bad row never blocks the rest of the sweep, and a payment
// callback racing the sweep simply wins or loses per order.
type CancelTimedOutOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     OrderLocker
	logger     *slog.Logger
}

// NewCancelTimedOutOrdersCommandHandler creates a handler for the payment
// timeout sweep.
func NewCancelTimedOutOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	locker OrderLocker,
	logger *slog.Logger,
) CancelTimedOutOrdersCommandHandler {
	return CancelTimedOutOrdersCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		logger:     logger.With("component", "payment-timeout"),
	}
}

// Handle processes the sweep. Orders that changed status since being listed
// are skipped; other per-order failures are logged and the sweep continues.
func (h *CancelTimedOutOrdersCommandHandler) Handle(ctx context.Context, cmd CancelTimedOutOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cutoff := time.Now().Add(-cmd.Timeout())

	uow := h.uowFactory.Create()
	outstanding, err := uow.OrderRepository().ListOutstanding(ctx, order.PendingPayment, cutoff)
	if err != nil {
		return err
	}

	for _, stale := range outstanding {
		if cancelErr := h.cancelOne(ctx, stale.ID()); cancelErr != nil {
			var conflict *order.StatusConflictError
			if errors.As(cancelErr, &conflict) {
				continue
			}
			h.logger.Warn("failed to cancel timed out order",
				"orderID", stale.ID(), "error", cancelErr)
		}
	}

	return nil
}

func (h *CancelTimedOutOrdersCommandHandler) cancelOne(ctx context.Context, orderID int64) error {
	unlock := h.locker.Lock(orderID)
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	// A payment callback may have won the race between listing and locking.
	// Cancel would still be legal from AwaitingConfirmation, so check the
	// sweep's own precondition instead of relying on the transition guard.
	if aggregate.Status() != order.PendingPayment {
		return order.NewStatusConflictError(aggregate.Status(), "auto-cancel")
	}

	patch, err := aggregate.Cancel(order.CancelReasonPaymentTimeout, false, time.Now())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, orderID, patch); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
