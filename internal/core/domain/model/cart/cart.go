// Package cart models the shopping cart entries consumed by order submission.
// The cart store itself is an external collaborator: the order core only reads
// a user's entries to snapshot them into line items and deletes them all once
// an order is successfully submitted.
package cart

import (
	"time"

	"takeout/internal/core/domain/model/kernel"
)

// Entry is one (user, item) cart row with its snapshot price and quantity.
// Exactly one of DishID or SetmealID is set.
type Entry struct {
	ID        int64
	UserID    int64
	DishID    *int64
	SetmealID *int64
	Name      string
	Flavor    string
	Price     kernel.Money
	Quantity  int
	CreatedAt time.Time
}
