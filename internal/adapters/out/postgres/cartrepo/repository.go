package cartrepo

import (
	"context"

	"takeout/internal/core/domain/model/cart"

	"gorm.io/gorm"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// ListByUser returns all cart entries for a user in insertion order.
// An empty cart returns an empty slice, not an error.
func (r *GormCartRepository) ListByUser(ctx context.Context, userID int64) ([]cart.Entry, error) {
	var dtos []CartEntryDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]cart.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// DeleteByUser removes every cart entry for a user. Deleting an already
// empty cart is not an error.
func (r *GormCartRepository) DeleteByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&CartEntryDTO{}).Error
}
