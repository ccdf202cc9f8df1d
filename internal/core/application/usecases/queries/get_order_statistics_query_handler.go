package queries

import (
	"context"

	"takeout/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderStatisticsQueryHandler counts orders per active status for the
// merchant dashboard.
type GetOrderStatisticsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatisticsQueryHandler creates a handler for dashboard counters.
// Requires a GORM database connection for query execution.
func NewGetOrderStatisticsQueryHandler(db *gorm.DB) GetOrderStatisticsQueryHandler {
	return GetOrderStatisticsQueryHandler{db: db}
}

// Handle executes the counts. Statuses with no orders report zero.
func (h GetOrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatisticsQuery,
) (*OrderStatisticsResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		WHERE status IN (?, ?, ?)
		GROUP BY status
	`, order.AwaitingConfirmation, order.Confirmed, order.OutForDelivery).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resp OrderStatisticsResponse
	for rows.Next() {
		var status order.Status
		var count int64
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}

		switch status {
		case order.AwaitingConfirmation:
			resp.AwaitingConfirmation = count
		case order.Confirmed:
			resp.Confirmed = count
		case order.OutForDelivery:
			resp.OutForDelivery = count
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &resp, nil
}
