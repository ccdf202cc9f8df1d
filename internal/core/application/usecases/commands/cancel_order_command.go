package commands

import (
	"errors"
	"fmt"

	"takeout/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a customer's request to cancel their own
// order before the merchant has confirmed it.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	userID  int64

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order on behalf of
// the given user.
func NewCancelOrderCommand(orderID, userID int64) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order to cancel.
func (c CancelOrderCommand) OrderID() int64 {
	return c.orderID
}

// UserID returns the acting user's id.
func (c CancelOrderCommand) UserID() int64 {
	return c.userID
}

func (c *CancelOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return fmt.Errorf("order id must be greater than 0, got %d", orderID)
	}
	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("user id must be greater than 0, got %d", userID)
	}
	c.userID = userID
	return nil
}
