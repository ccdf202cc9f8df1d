package queries

import (
	"context"

	"takeout/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetUserOrdersQueryHandler reads one page of a user's orders from the
// database, newest first, with line items attached.
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle executes the paged read. A page past the end of the history returns
// an empty page with the correct total, not an error.
func (h GetUserOrdersQueryHandler) Handle(ctx context.Context, query GetUserOrdersQuery) (*UserOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := "user_id = ?"
	args := []any{query.UserID()}
	if query.Status() != nil {
		where += " AND status = ?"
		args = append(args, *query.Status())
	}

	var total int64
	if err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM orders WHERE "+where, args...).
		Scan(&total).Error; err != nil {
		return nil, err
	}

	offset := (query.Page() - 1) * query.PageSize()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			user_id,
			consignee,
			phone,
			address,
			amount,
			remark,
			status,
			pay_status,
			order_time,
			checkout_time,
			cancel_time,
			delivery_time,
			cancel_reason,
			rejection_reason
		FROM orders
		WHERE `+where+`
		ORDER BY order_time DESC, id DESC
		LIMIT ? OFFSET ?
	`, append(args, query.PageSize(), offset)...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0, query.PageSize())
	orderIDs := make([]int64, 0, query.PageSize())
	for rows.Next() {
		var resp OrderResponse
		if err = rows.Scan(
			&resp.ID,
			&resp.Number,
			&resp.UserID,
			&resp.Consignee,
			&resp.Phone,
			&resp.Address,
			&resp.Amount,
			&resp.Remark,
			&resp.Status,
			&resp.PayStatus,
			&resp.OrderTime,
			&resp.CheckoutTime,
			&resp.CancelTime,
			&resp.DeliveryTime,
			&resp.CancelReason,
			&resp.RejectionReason,
		); err != nil {
			return nil, err
		}
		resp.StatusLabel = order.Status(resp.Status).String()
		orders = append(orders, resp)
		orderIDs = append(orderIDs, resp.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	itemsByOrder, err := loadOrderItems(ctx, h.db, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}

	return &UserOrdersResponse{Total: total, Orders: orders}, nil
}
