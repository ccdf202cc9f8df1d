package order

import (
	"errors"
	"fmt"

	"takeout/internal/pkg/errs"
)

// ErrStatusConflict is the unwrap target for every StatusConflictError.
// Callers use errors.Is(err, ErrStatusConflict) to distinguish an illegal
// transition from "order not found" and other failures.
var ErrStatusConflict = errors.New("order status conflict")

// StatusConflictError is returned when a requested lifecycle event is not legal
// from the order's current status. The transition performs no write.
type StatusConflictError struct {
	Status Status
	Event  string
}

// NewStatusConflictError creates a StatusConflictError for the given source
// status and attempted event.
func NewStatusConflictError(status Status, event string) *StatusConflictError {
	return &StatusConflictError{Status: status, Event: event}
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("order status conflict: cannot %s order in %s status", e.Event, e.Status)
}

func (e *StatusConflictError) Unwrap() error {
	return ErrStatusConflict
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	PendingPayment ──> AwaitingConfirmation ──> Confirmed ──> OutForDelivery ──> Completed
//	      │                     │
//	      └─────────────────────┴──> Cancelled
//
// The integer values are wire-stable: they are persisted as-is and exposed to
// clients, so they must never be renumbered.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// PendingPayment is the initial status after submission; the order is
	// created but the customer has not completed prepayment yet.
	PendingPayment

	// AwaitingConfirmation indicates a paid order waiting for the merchant
	// to accept it.
	AwaitingConfirmation

	// Confirmed indicates the merchant has accepted the order.
	Confirmed

	// OutForDelivery indicates the merchant has dispatched the order.
	OutForDelivery

	// Completed indicates the order has been delivered.
	// This is a final state with no further transitions allowed.
	Completed

	// Cancelled indicates the order was cancelled by the user or rejected by
	// the merchant. This is a final state with no further transitions allowed.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "Unknown",
		PendingPayment:       "PendingPayment",
		AwaitingConfirmation: "AwaitingConfirmation",
		Confirmed:            "Confirmed",
		OutForDelivery:       "OutForDelivery",
		Completed:            "Completed",
		Cancelled:            "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingPayment:       "PendingPayment",
		AwaitingConfirmation: "AwaitingConfirmation",
		Confirmed:            "Confirmed",
		OutForDelivery:       "OutForDelivery",
		Completed:            "Completed",
		Cancelled:            "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are PendingPayment through Cancelled; StatusUnknown (0) and
// any other values are invalid. Used to check Status values coming from
// external sources (database rows, API payloads) before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. Implements fmt.Stringer and is
// safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ConfirmPayment transitions the status to AwaitingConfirmation.
//
// Valid transitions:
//   - PendingPayment -> AwaitingConfirmation (gateway reported a successful prepayment)
//
// Returns (AwaitingConfirmation, nil) on a valid transition, or
// (0, *StatusConflictError) when the order is not awaiting payment — including
// a second payment confirmation for an already-paid order.
func (s Status) ConfirmPayment() (Status, error) {
	if s != PendingPayment {
		return 0, NewStatusConflictError(s, "confirm payment for")
	}
	return AwaitingConfirmation, nil
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - AwaitingConfirmation -> Confirmed (merchant accepts the order)
func (s Status) Confirm() (Status, error) {
	if s != AwaitingConfirmation {
		return 0, NewStatusConflictError(s, "confirm")
	}
	return Confirmed, nil
}

// Reject transitions the status to Cancelled on merchant rejection.
//
// Valid transitions:
//   - AwaitingConfirmation -> Cancelled (merchant rejects a paid order)
//
// Rejection of an order in any other status is a conflict: orders cannot be
// rejected before payment or after acceptance.
func (s Status) Reject() (Status, error) {
	if s != AwaitingConfirmation {
		return 0, NewStatusConflictError(s, "reject")
	}
	return Cancelled, nil
}

// Cancel transitions the status to Cancelled on user cancellation.
//
// Valid transitions:
//   - PendingPayment -> Cancelled (never paid, no refund involved)
//   - AwaitingConfirmation -> Cancelled (paid, refund required)
//
// Cancelling a Confirmed-or-later order is a conflict, reported as such rather
// than as "not found": the order exists, its status just forbids the event.
func (s Status) Cancel() (Status, error) {
	if s != PendingPayment && s != AwaitingConfirmation {
		return 0, NewStatusConflictError(s, "cancel")
	}
	return Cancelled, nil
}

// Dispatch transitions the status to OutForDelivery.
//
// Valid transitions:
//   - Confirmed -> OutForDelivery (merchant hands the order to a courier)
func (s Status) Dispatch() (Status, error) {
	if s != Confirmed {
		return 0, NewStatusConflictError(s, "dispatch")
	}
	return OutForDelivery, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - OutForDelivery -> Completed (order delivered)
//
// Completed is a final state with no further transitions possible.
func (s Status) Complete() (Status, error) {
	if s != OutForDelivery {
		return 0, NewStatusConflictError(s, "complete")
	}
	return Completed, nil
}
