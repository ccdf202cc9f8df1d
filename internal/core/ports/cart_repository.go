package ports

import (
	"context"

	"takeout/internal/core/domain/model/address"
	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/profile"
)

// CartRepository defines the order core's read-and-clear contract against the
// external cart store.
type CartRepository interface {
	// ListByUser returns all cart entries for a user, possibly empty.
	ListByUser(ctx context.Context, userID int64) ([]cart.Entry, error)

	// DeleteByUser removes every cart entry for a user. Called inside the
	// submission transaction so the cart clears atomically with order creation.
	DeleteByUser(ctx context.Context, userID int64) error
}

// AddressRepository defines the read-only contract against the address book.
type AddressRepository interface {
	// Get retrieves one address book entry by id.
	// Returns an ObjectNotFoundError if it does not exist.
	Get(ctx context.Context, id int64) (*address.Entry, error)
}

// ProfileRepository defines the read-only contract against user management.
type ProfileRepository interface {
	// Get retrieves the payment identity slice of a user record.
	// Returns an ObjectNotFoundError if the user does not exist.
	Get(ctx context.Context, userID int64) (*profile.Profile, error)
}
