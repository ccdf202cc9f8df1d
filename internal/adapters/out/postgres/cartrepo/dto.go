// Package cartrepo persists shopping cart entries. The cart is a scratch
// store owned by the ordering flow: rows are written while the customer
// shops and deleted wholesale when an order is submitted.
package cartrepo

import (
	"time"

	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CartEntryDTO represents one persisted shopping cart row.
type CartEntryDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	UserID    int64           `gorm:"index;not null"`
	DishID    *int64          `gorm:"index"`
	SetmealID *int64          `gorm:"index"`
	Name      string          `gorm:"size:64;not null"`
	Flavor    string          `gorm:"size:128;not null;default:''"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Quantity  int             `gorm:"not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for cart entries.
func (CartEntryDTO) TableName() string {
	return "shopping_carts"
}

func toDomain(dto CartEntryDTO) (cart.Entry, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return cart.Entry{}, err
	}

	return cart.Entry{
		ID:        dto.ID,
		UserID:    dto.UserID,
		DishID:    dto.DishID,
		SetmealID: dto.SetmealID,
		Name:      dto.Name,
		Flavor:    dto.Flavor,
		Price:     price,
		Quantity:  dto.Quantity,
		CreatedAt: dto.CreatedAt,
	}, nil
}
