package commands

import (
	"errors"
	"fmt"

	"takeout/internal/pkg/guard"
)

var ErrPayOrderCommandIsNotConstructed = errors.New(
	"PayOrderCommand must be created via NewPayOrderCommand constructor",
)

// PayOrderCommand represents a request for a prepayment transaction for an
// existing order, scoped to the acting user.
type PayOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	userID      int64

	guard guard.ConstructorGuard
}

// NewPayOrderCommand creates a command to request prepayment for an order.
func NewPayOrderCommand(orderNumber string, userID int64) (PayOrderCommand, error) {
	cmd := PayOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setUserID(userID),
	); err != nil {
		return PayOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}

// OrderNumber returns the merchant order number to pay.
func (c PayOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// UserID returns the acting user's id.
func (c PayOrderCommand) UserID() int64 {
	return c.userID
}

func (c *PayOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errors.New("order number is required")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *PayOrderCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("user id must be greater than 0, got %d", userID)
	}
	c.userID = userID
	return nil
}
