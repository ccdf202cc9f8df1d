package order

import (
	"fmt"

	"takeout/internal/pkg/errs"
)

// PayStatus tracks whether money has moved for an order. It is an axis
// independent from Status but constrained by it: Paid is only reachable after
// a successful gateway prepayment confirmation, and Refunded only from Paid as
// part of a cancellation or rejection.
//
// The integer values are wire-stable and must never be renumbered.
type PayStatus int

const (
	// Unpaid is the initial pay status of every submitted order.
	Unpaid PayStatus = iota

	// Paid indicates the payment gateway confirmed the prepayment.
	Paid

	// Refunded indicates the prepayment was returned during cancellation or rejection.
	Refunded
)

// Validate checks if the PayStatus value is one of Unpaid, Paid, or Refunded.
func (p PayStatus) Validate() error {
	switch p {
	case Unpaid, Paid, Refunded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("pay status is invalid",
			fmt.Errorf("%d is not a valid pay status", p))
	}
}

// String returns the human-readable name of the pay status.
func (p PayStatus) String() string {
	switch p {
	case Unpaid:
		return "Unpaid"
	case Paid:
		return "Paid"
	case Refunded:
		return "Refunded"
	default:
		return "Unknown"
	}
}
