// Package order provides domain entities and business logic for the order
// lifecycle in the food-ordering system. It implements the Order aggregate root
// with its line items and the status state machine that owns every lifecycle
// transition.
//
// The package includes:
//   - Order: the aggregate root managing identity, the delivery snapshot, and lifecycle
//   - Status: a state machine enforcing legal order status transitions
//   - PayStatus: an independent axis tracking whether money has moved
//   - Item: an immutable line-item snapshot taken from the cart at submission time
//   - Patch: a sparse-update value object describing the fields a transition changes
//
// Key business rules:
//   - Status follows PendingPayment -> AwaitingConfirmation -> Confirmed ->
//     OutForDelivery -> Completed, with Cancelled reachable from PendingPayment
//     and AwaitingConfirmation
//   - PayStatus becomes Paid only through a confirmed gateway prepayment and
//     Refunded only from Paid during a cancellation or rejection
//   - Line items are written once at submission and never updated afterwards
//   - Every transition is expressed as a Patch so persistence performs a
//     status-scoped partial update, never a blind overwrite
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
