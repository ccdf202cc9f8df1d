package commands

import (
	"errors"
	"fmt"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	// ErrCartIsEmpty is returned when submission is attempted with no cart entries.
	ErrCartIsEmpty = errors.New("shopping cart is empty")
)

// SubmitOrderCommand represents a request to turn a user's cart into a
// persisted order. The amount is the caller-supplied total; line items are
// snapshotted from the cart inside the handler.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(userID, addressID, amount, "no onions")
//	if err != nil {
//	    return fmt.Errorf("invalid submission: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to submit order: %w", err)
//	}
//	fmt.Printf("order %s created", result.Number)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	userID    int64
	addressID int64
	amount    kernel.Money
	remark    string

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to submit the user's cart as an order.
// Validates that user and address ids are positive.
func NewSubmitOrderCommand(userID, addressID int64, amount kernel.Money, remark string) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		amount: amount,
		remark: remark,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setAddressID(addressID),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// UserID returns the acting user's id.
func (c SubmitOrderCommand) UserID() int64 {
	return c.userID
}

// AddressID returns the address book entry to deliver to.
func (c SubmitOrderCommand) AddressID() int64 {
	return c.addressID
}

// Amount returns the caller-supplied order total.
func (c SubmitOrderCommand) Amount() kernel.Money {
	return c.amount
}

// Remark returns the optional customer note.
func (c SubmitOrderCommand) Remark() string {
	return c.remark
}

func (c *SubmitOrderCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("user id must be greater than 0, got %d", userID)
	}
	c.userID = userID
	return nil
}

func (c *SubmitOrderCommand) setAddressID(addressID int64) error {
	if addressID <= 0 {
		return fmt.Errorf("address id must be greater than 0, got %d", addressID)
	}
	c.addressID = addressID
	return nil
}
