// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, per-order locking where
// a lifecycle transition is involved, transaction management, and persistence.
package commands

import (
	"context"

	"takeout/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CartRepoFactory provides access to the cart repository within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// AddressRepoFactory provides access to the address repository within a transaction.
	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	// ProfileRepoFactory provides access to the profile repository within a transaction.
	ProfileRepoFactory interface {
		ProfileRepository() ports.ProfileRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used by every lifecycle transition command.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SubmitUoW manages the submission transaction, which spans the order
	// aggregate, the cart store, and the address book.
	SubmitUoW interface {
		TxManager
		OrderRepoFactory
		CartRepoFactory
		AddressRepoFactory
	}

	// SubmitUoWFactory creates new submission unit of work instances.
	SubmitUoWFactory interface {
		Create() SubmitUoW
	}

	// PaymentUoW provides the read surface for payment orchestration:
	// the order aggregate plus the user payment identity.
	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		ProfileRepoFactory
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}
)

// OrderLocker serializes lifecycle transitions per order id: at most one
// in-flight transition per order. The returned function releases the lock.
type OrderLocker interface {
	Lock(orderID int64) func()
}
