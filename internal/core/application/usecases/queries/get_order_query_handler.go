package queries

import (
	"context"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order and its line items from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns an ObjectNotFoundError when no order
// with the given id exists.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

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
		WHERE id = ?
	`, query.OrderID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	var resp OrderResponse
	err = rows.Scan(
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
	)
	if err != nil {
		return nil, err
	}
	resp.StatusLabel = order.Status(resp.Status).String()

	items, err := loadOrderItems(ctx, h.db, []int64{resp.ID})
	if err != nil {
		return nil, err
	}
	resp.Items = items[resp.ID]

	return &resp, nil
}

// loadOrderItems fetches line items for the given order ids, grouped by order.
func loadOrderItems(ctx context.Context, db *gorm.DB, orderIDs []int64) (map[int64][]OrderItemResponse, error) {
	itemsByOrder := make(map[int64][]OrderItemResponse, len(orderIDs))
	if len(orderIDs) == 0 {
		return itemsByOrder, nil
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			name,
			flavor,
			price,
			quantity
		FROM order_items
		WHERE order_id IN ?
		ORDER BY id
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var item OrderItemResponse
		if err = rows.Scan(&orderID, &item.Name, &item.Flavor, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		itemsByOrder[orderID] = append(itemsByOrder[orderID], item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return itemsByOrder, nil
}
