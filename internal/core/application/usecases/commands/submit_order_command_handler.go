package commands

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
)

// SubmitOrderResult reports the outcome of a successful submission.
type SubmitOrderResult struct {
	OrderID   int64
	Number    string
	Amount    kernel.Money
	OrderTime time.Time
}

// SubmitOrderCommandHandler converts a validated cart plus a delivery address
// into a persisted order aggregate and clears the cart, all inside one
// transaction: either the order header, all line items, and the cart deletion
// land together, or none of them do.
type SubmitOrderCommandHandler struct {
	uowFactory SubmitUoWFactory
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
// Requires a SubmitUoWFactory for transactional persistence.
func NewSubmitOrderCommandHandler(uowFactory SubmitUoWFactory) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the submission command.
//
// Preconditions checked in order: the address must resolve (ObjectNotFoundError
// for "address") and the cart must be non-empty (ErrCartIsEmpty). On success
// the new order starts in PendingPayment/Unpaid with line-item snapshots copied
// from the cart entries, and the user's cart is emptied.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SubmitOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	addr, err := uow.AddressRepository().Get(ctx, cmd.AddressID())
	if err != nil {
		return SubmitOrderResult{}, err
	}

	entries, err := uow.CartRepository().ListByUser(ctx, cmd.UserID())
	if err != nil {
		return SubmitOrderResult{}, err
	}
	if len(entries) == 0 {
		return SubmitOrderResult{}, ErrCartIsEmpty
	}

	items := make([]order.Item, 0, len(entries))
	for _, entry := range entries {
		item, itemErr := order.NewItem(
			entry.DishID, entry.SetmealID,
			entry.Name, entry.Flavor,
			entry.Price, entry.Quantity,
		)
		if itemErr != nil {
			return SubmitOrderResult{}, itemErr
		}
		items = append(items, item)
	}

	now := time.Now()
	aggregate, err := order.NewOrder(
		order.NewNumber(now),
		cmd.UserID(),
		addr.Consignee, addr.Phone, addr.Detail,
		cmd.Amount(),
		cmd.Remark(),
		now,
		items,
	)
	if err != nil {
		return SubmitOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return SubmitOrderResult{}, err
	}

	if err = uow.CartRepository().DeleteByUser(ctx, cmd.UserID()); err != nil {
		return SubmitOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SubmitOrderResult{}, err
	}

	return SubmitOrderResult{
		OrderID:   aggregate.ID(),
		Number:    aggregate.Number(),
		Amount:    aggregate.Amount(),
		OrderTime: aggregate.OrderTime(),
	}, nil
}
