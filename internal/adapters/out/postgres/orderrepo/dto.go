// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The surrogate id is assigned by the database; the order number carries a
// unique index because customers and the payment gateway address orders by it.
type OrderDTO struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	Number          string          `gorm:"size:32;uniqueIndex;not null"`
	UserID          int64           `gorm:"index;not null"`
	Consignee       string          `gorm:"size:64;not null"`
	Phone           string          `gorm:"size:16;not null"`
	Address         string          `gorm:"size:255;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Remark          string          `gorm:"size:255;not null;default:''"`
	Status          int             `gorm:"index;not null"`
	PayStatus       int             `gorm:"not null"`
	OrderTime       time.Time       `gorm:"index;not null"`
	CheckoutTime    *time.Time
	CancelTime      *time.Time
	DeliveryTime    *time.Time
	CancelReason    string         `gorm:"size:255;not null;default:''"`
	RejectionReason string         `gorm:"size:255;not null;default:''"`
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted order line item. Name, flavor, and
// price are snapshots taken at submission time, deliberately denormalized so
// later menu edits cannot rewrite order history.
type OrderItemDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"index;not null"`
	DishID    *int64          `gorm:"index"`
	SetmealID *int64          `gorm:"index"`
	Name      string          `gorm:"size:64;not null"`
	Flavor    string          `gorm:"size:128;not null;default:''"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Quantity  int             `gorm:"not null"`
}

// TableName specifies the database table name for order line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation,
// line items included.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   aggregate.ID(),
			DishID:    item.DishID(),
			SetmealID: item.SetmealID(),
			Name:      item.Name(),
			Flavor:    item.Flavor(),
			Price:     item.Price().Decimal(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID(),
		Number:          aggregate.Number(),
		UserID:          aggregate.UserID(),
		Consignee:       aggregate.Consignee(),
		Phone:           aggregate.Phone(),
		Address:         aggregate.Address(),
		Amount:          aggregate.Amount().Decimal(),
		Remark:          aggregate.Remark(),
		Status:          int(aggregate.Status()),
		PayStatus:       int(aggregate.PayStatus()),
		OrderTime:       aggregate.OrderTime(),
		CheckoutTime:    aggregate.CheckoutTime(),
		CancelTime:      aggregate.CancelTime(),
		DeliveryTime:    aggregate.DeliveryTime(),
		CancelReason:    aggregate.CancelReason(),
		RejectionReason: aggregate.RejectionReason(),
		Items:           items,
	}
}

// toDomain converts a database DTO back to an order aggregate, re-running the
// domain invariants so corrupt rows surface as errors instead of aggregates.
func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, err := kernel.NewMoney(itemDTO.Price)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(
			itemDTO.DishID, itemDTO.SetmealID,
			itemDTO.Name, itemDTO.Flavor,
			price, itemDTO.Quantity,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:              dto.ID,
		Number:          dto.Number,
		UserID:          dto.UserID,
		Consignee:       dto.Consignee,
		Phone:           dto.Phone,
		Address:         dto.Address,
		Amount:          amount,
		Remark:          dto.Remark,
		Status:          order.Status(dto.Status),
		PayStatus:       order.PayStatus(dto.PayStatus),
		OrderTime:       dto.OrderTime,
		CheckoutTime:    dto.CheckoutTime,
		CancelTime:      dto.CancelTime,
		DeliveryTime:    dto.DeliveryTime,
		CancelReason:    dto.CancelReason,
		RejectionReason: dto.RejectionReason,
		Items:           items,
	})
}
