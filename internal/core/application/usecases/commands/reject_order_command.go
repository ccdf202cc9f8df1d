package commands

import (
	"errors"
	"fmt"

	"takeout/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand represents the merchant declining a paid order, with a
// reason shown to the customer.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	reason  string

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand creates a command to decline an order.
// The reason is mandatory.
func NewRejectOrderCommand(orderID int64, reason string) (RejectOrderCommand, error) {
	cmd := RejectOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return RejectOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order to decline.
func (c RejectOrderCommand) OrderID() int64 {
	return c.orderID
}

// Reason returns the customer-facing rejection reason.
func (c RejectOrderCommand) Reason() string {
	return c.reason
}

func (c *RejectOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return fmt.Errorf("order id must be greater than 0, got %d", orderID)
	}
	c.orderID = orderID
	return nil
}

func (c *RejectOrderCommand) setReason(reason string) error {
	if reason == "" {
		return errors.New("rejection reason is required")
	}
	c.reason = reason
	return nil
}
