package queries

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var ErrGetOrderStatisticsQueryIsNotConstructed = errors.New(
	"GetOrderStatisticsQuery must be created via NewGetOrderStatisticsQuery constructor",
)

// GetOrderStatisticsQuery retrieves per-status order counts for the merchant
// dashboard. This is a parameterless query over the active statuses.
type GetOrderStatisticsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderStatisticsQuery creates a query for the merchant's order counters.
func NewGetOrderStatisticsQuery() GetOrderStatisticsQuery {
	return GetOrderStatisticsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatisticsQueryIsNotConstructed)
}

// OrderStatisticsResponse holds the order counts shown on the merchant
// dashboard, one counter per status needing merchant attention.
type OrderStatisticsResponse struct {
	AwaitingConfirmation int64
	Confirmed            int64
	OutForDelivery       int64
}
