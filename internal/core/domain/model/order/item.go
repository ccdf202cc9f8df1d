package order

import (
	"errors"
	"fmt"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
)

var (
	// ErrItemRefIsRequired is returned when a line item references neither a
	// dish nor a combo meal.
	ErrItemRefIsRequired = errors.New("item must reference a dish or a combo meal")
)

// Item is one order line item: a point-in-time snapshot of a cart entry taken
// at submission. Name and price are copied, not referenced — later catalog
// changes never alter a persisted order.
//
// Items are immutable: created once in a single batch right after the order
// header and never individually updated.
type Item struct {
	dishID    *int64
	setmealID *int64
	name      string
	flavor    string
	price     kernel.Money
	quantity  int
}

// NewItem creates a validated line-item snapshot.
// Exactly the referenced catalog entry (dish or combo meal) must be set,
// name must be non-empty, and quantity must be positive.
func NewItem(dishID, setmealID *int64, name, flavor string, price kernel.Money, quantity int) (Item, error) {
	if dishID == nil && setmealID == nil {
		return Item{}, ErrItemRefIsRequired
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		dishID:    dishID,
		setmealID: setmealID,
		name:      name,
		flavor:    flavor,
		price:     price,
		quantity:  quantity,
	}, nil
}

// DishID returns the referenced dish id, or nil for combo-meal items.
func (i Item) DishID() *int64 {
	return i.dishID
}

// SetmealID returns the referenced combo meal id, or nil for dish items.
func (i Item) SetmealID() *int64 {
	return i.setmealID
}

// Name returns the item name snapshot.
func (i Item) Name() string {
	return i.name
}

// Flavor returns the chosen flavor snapshot, possibly empty.
func (i Item) Flavor() string {
	return i.flavor
}

// Price returns the unit price snapshot.
func (i Item) Price() kernel.Money {
	return i.price
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// Subtotal returns price multiplied by quantity.
func (i Item) Subtotal() kernel.Money {
	return i.price.Mul(i.quantity)
}
