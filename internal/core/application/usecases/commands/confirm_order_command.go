package commands

import (
	"errors"
	"fmt"

	"takeout/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand represents the merchant accepting a paid order.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand creates a command to accept an order.
func NewConfirmOrderCommand(orderID int64) (ConfirmOrderCommand, error) {
	cmd := ConfirmOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order to accept.
func (c ConfirmOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c *ConfirmOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return fmt.Errorf("order id must be greater than 0, got %d", orderID)
	}
	c.orderID = orderID
	return nil
}
