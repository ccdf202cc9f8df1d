package commands

import (
	"errors"
	"fmt"

	"takeout/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand represents handing a confirmed order to a rider.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand creates a command to send an order out for delivery.
func NewDispatchOrderCommand(orderID int64) (DispatchOrderCommand, error) {
	cmd := DispatchOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return DispatchOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order to dispatch.
func (c DispatchOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c *DispatchOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return fmt.Errorf("order id must be greater than 0, got %d", orderID)
	}
	c.orderID = orderID
	return nil
}
