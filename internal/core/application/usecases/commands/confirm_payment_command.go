package commands

import (
	"errors"
	"fmt"

	"takeout/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand records a successful payment reported by the payment
// gateway's asynchronous callback for the given order number.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	userID      int64

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command that marks an order as paid.
func NewConfirmPaymentCommand(orderNumber string, userID int64) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setUserID(userID),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderNumber returns the merchant order number the gateway reported paid.
func (c ConfirmPaymentCommand) OrderNumber() string {
	return c.orderNumber
}

// UserID returns the paying user's id.
func (c ConfirmPaymentCommand) UserID() int64 {
	return c.userID
}

func (c *ConfirmPaymentCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errors.New("order number is required")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *ConfirmPaymentCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("user id must be greater than 0, got %d", userID)
	}
	c.userID = userID
	return nil
}
