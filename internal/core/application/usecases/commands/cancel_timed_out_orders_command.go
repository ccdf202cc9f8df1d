package commands

import (
	"errors"
	"fmt"
	"time"

	"takeout/internal/pkg/guard"
)

var ErrCancelTimedOutOrdersCommandIsNotConstructed = errors.New(
	"CancelTimedOutOrdersCommand must be created via NewCancelTimedOutOrdersCommand constructor",
)

// CancelTimedOutOrdersCommand represents a sweep over unpaid orders: every
// order still in PendingPayment whose submission predates the timeout window
// gets cancelled.
type CancelTimedOutOrdersCommand struct { //nolint:recvcheck //using for validation
	timeout time.Duration

	guard guard.ConstructorGuard
}

// NewCancelTimedOutOrdersCommand creates a sweep command with the given
// payment timeout window.
func NewCancelTimedOutOrdersCommand(timeout time.Duration) (CancelTimedOutOrdersCommand, error) {
	cmd := CancelTimedOutOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTimeout(timeout); err != nil {
		return CancelTimedOutOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelTimedOutOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelTimedOutOrdersCommandIsNotConstructed)
}

// Timeout returns how long an order may await payment before the sweep
// cancels it.
func (c CancelTimedOutOrdersCommand) Timeout() time.Duration {
	return c.timeout
}

func (c *CancelTimedOutOrdersCommand) setTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("timeout must be greater than 0, got %s", timeout)
	}
	c.timeout = timeout
	return nil
}
