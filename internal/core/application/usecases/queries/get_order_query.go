// Package queries contains read-only operations for the CQRS read side.
// Query handlers bypass the domain model and read projection rows straight
// from the database, returning plain response structs.
package queries

import (
	"errors"
	"fmt"
	"time"

	"takeout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items by id.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order's details.
func NewGetOrderQuery(orderID int64) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the id of the order to look up.
func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return fmt.Errorf("order id must be greater than 0, got %d", orderID)
	}
	q.orderID = orderID
	return nil
}

// OrderItemResponse is one line-item row of an order details response.
type OrderItemResponse struct {
	Name     string
	Flavor   string
	Price    decimal.Decimal
	Quantity int
}

// OrderResponse is the read model for one order, line items included.
type OrderResponse struct {
	ID              int64
	Number          string
	UserID          int64
	Consignee       string
	Phone           string
	Address         string
	Amount          decimal.Decimal
	Remark          string
	Status          int
	StatusLabel     string
	PayStatus       int
	OrderTime       time.Time
	CheckoutTime    *time.Time
	CancelTime      *time.Time
	DeliveryTime    *time.Time
	CancelReason    string
	RejectionReason string
	Items           []OrderItemResponse
}
