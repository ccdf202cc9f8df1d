package queries

import (
	"errors"
	"fmt"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/guard"
)

var ErrGetUserOrdersQueryIsNotConstructed = errors.New(
	"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
)

const maxOrdersPageSize = 100

// GetUserOrdersQuery retrieves one page of a user's order history, newest
// first, optionally filtered by status.
type GetUserOrdersQuery struct { //nolint:recvcheck //using for validation
	userID   int64
	status   *order.Status
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery creates a paged order history query.
// Pages are 1-based; page size is capped at 100.
func NewGetUserOrdersQuery(userID int64, status *order.Status, page, pageSize int) (GetUserOrdersQuery, error) {
	query := GetUserOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setUserID(userID),
		query.setStatus(status),
		query.setPage(page),
		query.setPageSize(pageSize),
	); err != nil {
		return GetUserOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

// UserID returns the owning user's id.
func (q GetUserOrdersQuery) UserID() int64 {
	return q.userID
}

// Status returns the optional status filter, nil when not filtering.
func (q GetUserOrdersQuery) Status() *order.Status {
	return q.status
}

// Page returns the 1-based page number.
func (q GetUserOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the page size.
func (q GetUserOrdersQuery) PageSize() int {
	return q.pageSize
}

func (q *GetUserOrdersQuery) setUserID(userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("user id must be greater than 0, got %d", userID)
	}
	q.userID = userID
	return nil
}

func (q *GetUserOrdersQuery) setStatus(status *order.Status) error {
	if status != nil {
		if err := status.Validate(); err != nil {
			return err
		}
	}
	q.status = status
	return nil
}

func (q *GetUserOrdersQuery) setPage(page int) error {
	if page <= 0 {
		return fmt.Errorf("page must be greater than 0, got %d", page)
	}
	q.page = page
	return nil
}

func (q *GetUserOrdersQuery) setPageSize(pageSize int) error {
	if pageSize <= 0 || pageSize > maxOrdersPageSize {
		return fmt.Errorf("page size must be between 1 and %d, got %d", maxOrdersPageSize, pageSize)
	}
	q.pageSize = pageSize
	return nil
}

// UserOrdersResponse is one page of a user's order history.
type UserOrdersResponse struct {
	Total  int64
	Orders []OrderResponse
}
