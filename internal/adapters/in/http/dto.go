package http

import (
	"time"

	"takeout/internal/core/application/usecases/queries"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type SubmitOrderRequest struct {
	UserID    int64  `json:"userId"`
	AddressID int64  `json:"addressId"`
	Amount    string `json:"amount"`
	Remark    string `json:"remark"`
}

type SubmitOrderResponse struct {
	OrderID   int64     `json:"orderId"`
	Number    string    `json:"number"`
	Amount    string    `json:"amount"`
	OrderTime time.Time `json:"orderTime"`
}

type PayOrderRequest struct {
	OrderNumber string `json:"orderNumber"`
	UserID      int64  `json:"userId"`
}

// PaymentCallbackRequest is what the payment gateway posts back after the
// payer completed the prepayment.
type PaymentCallbackRequest struct {
	OrderNumber string `json:"orderNumber"`
	UserID      int64  `json:"userId"`
}

type CancelOrderRequest struct {
	UserID int64 `json:"userId"`
}

type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

type OrderItem struct {
	Name     string `json:"name"`
	Flavor   string `json:"flavor,omitempty"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID              int64       `json:"id"`
	Number          string      `json:"number"`
	UserID          int64       `json:"userId"`
	Consignee       string      `json:"consignee"`
	Phone           string      `json:"phone"`
	Address         string      `json:"address"`
	Amount          string      `json:"amount"`
	Remark          string      `json:"remark,omitempty"`
	Status          int         `json:"status"`
	StatusLabel     string      `json:"statusLabel"`
	PayStatus       int         `json:"payStatus"`
	OrderTime       time.Time   `json:"orderTime"`
	CheckoutTime    *time.Time  `json:"checkoutTime,omitempty"`
	CancelTime      *time.Time  `json:"cancelTime,omitempty"`
	DeliveryTime    *time.Time  `json:"deliveryTime,omitempty"`
	CancelReason    string      `json:"cancelReason,omitempty"`
	RejectionReason string      `json:"rejectionReason,omitempty"`
	Items           []OrderItem `json:"items"`
}

type OrderPage struct {
	Total  int64   `json:"total"`
	Orders []Order `json:"orders"`
}

type OrderStatistics struct {
	AwaitingConfirmation int64 `json:"awaitingConfirmation"`
	Confirmed            int64 `json:"confirmed"`
	OutForDelivery       int64 `json:"outForDelivery"`
}

func toOrder(resp *queries.OrderResponse) Order {
	items := make([]OrderItem, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = OrderItem{
			Name:     item.Name,
			Flavor:   item.Flavor,
			Price:    item.Price.StringFixed(2),
			Quantity: item.Quantity,
		}
	}

	return Order{
		ID:              resp.ID,
		Number:          resp.Number,
		UserID:          resp.UserID,
		Consignee:       resp.Consignee,
		Phone:           resp.Phone,
		Address:         resp.Address,
		Amount:          resp.Amount.StringFixed(2),
		Remark:          resp.Remark,
		Status:          resp.Status,
		StatusLabel:     resp.StatusLabel,
		PayStatus:       resp.PayStatus,
		OrderTime:       resp.OrderTime,
		CheckoutTime:    resp.CheckoutTime,
		CancelTime:      resp.CancelTime,
		DeliveryTime:    resp.DeliveryTime,
		CancelReason:    resp.CancelReason,
		RejectionReason: resp.RejectionReason,
		Items:           items,
	}
}
