// Package ports defines the contracts between the order core and its
// infrastructure: persistence gateways, the external payment gateway, and the
// merchant notification publisher. These interfaces enable dependency
// inversion and testability.
package ports

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
)

// OrdersPageQuery is the typed parameter set for paged order listings.
// Nil filters are not applied.
type OrdersPageQuery struct {
	UserID   *int64
	Status   *order.Status
	Page     int
	PageSize int
}

// OrderStatsQuery is the typed parameter set for aggregate count and sum
// queries over orders. Nil filters are not applied; Begin/End bound the order
// time half-open: [Begin, End).
type OrderStatsQuery struct {
	Status *order.Status
	Begin  *time.Time
	End    *time.Time
}

// OrderRepository defines the persistence contract for order aggregates.
//
// Update applies a sparse patch: only the patch's non-nil fields are written,
// every other column keeps its stored value. This is what lets the state
// machine change status-scoped fields without blind-overwriting the rest of
// the row.
type OrderRepository interface {
	// Add persists a new order aggregate (header plus line items in one batch)
	// and assigns the database identity back onto the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update applies a sparse patch to the identified order.
	// Returns an ObjectNotFoundError if no row matches.
	Update(ctx context.Context, id int64, patch order.Patch) error

	// Get retrieves an order aggregate with its line items by surrogate id.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetByNumberAndUser retrieves an order by its order number scoped to the
	// owning user, preventing cross-account lookups.
	GetByNumberAndUser(ctx context.Context, number string, userID int64) (*order.Order, error)

	// List returns one page of orders matching the query, newest first,
	// together with the total match count.
	List(ctx context.Context, query OrdersPageQuery) ([]*order.Order, int64, error)

	// ListOutstanding returns orders in the given status whose order time
	// predates the cutoff. Used by the payment timeout sweep.
	ListOutstanding(ctx context.Context, status order.Status, before time.Time) ([]*order.Order, error)

	// Count returns the number of orders matching the stats query.
	Count(ctx context.Context, query OrderStatsQuery) (int64, error)

	// SumAmount returns the total order amount over the stats query matches.
	SumAmount(ctx context.Context, query OrderStatsQuery) (kernel.Money, error)
}
