// Package addressrepo reads delivery addresses from the address book table.
// The ordering flow only reads addresses; the address book itself is managed
// elsewhere.
package addressrepo

import (
	"context"
	"errors"

	"takeout/internal/core/domain/model/address"
	"takeout/internal/pkg/errs"

	"gorm.io/gorm"
)

// AddressDTO represents one persisted address book row.
type AddressDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"index;not null"`
	Consignee string `gorm:"size:64;not null"`
	Phone     string `gorm:"size:16;not null"`
	Detail    string `gorm:"size:255;not null"`
}

// TableName specifies the database table name for address book entries.
func (AddressDTO) TableName() string {
	return "address_books"
}

// GormAddressRepository implements ports.AddressRepository using GORM.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GORM address repository.
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// Get retrieves one address book entry by id.
func (r *GormAddressRepository) Get(ctx context.Context, id int64) (*address.Entry, error) {
	var dto AddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("addressID", id)
		}
		return nil, err
	}

	return &address.Entry{
		ID:        dto.ID,
		UserID:    dto.UserID,
		Consignee: dto.Consignee,
		Phone:     dto.Phone,
		Detail:    dto.Detail,
	}, nil
}
