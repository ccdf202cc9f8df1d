// Package profilerepo reads the payment identity slice of user records.
// User management owns the table; the ordering flow only needs the external
// payment token when it talks to the gateway.
package profilerepo

import (
	"context"
	"errors"

	"takeout/internal/core/domain/model/profile"
	"takeout/internal/pkg/errs"

	"gorm.io/gorm"
)

// ProfileDTO represents the user columns the ordering flow reads.
type ProfileDTO struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	OpenID string `gorm:"size:64;uniqueIndex;not null"`
	Name   string `gorm:"size:64;not null;default:''"`
	Phone  string `gorm:"size:16;not null;default:''"`
}

// TableName specifies the database table name for user records.
func (ProfileDTO) TableName() string {
	return "users"
}

// GormProfileRepository implements ports.ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository.
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Get retrieves the payment identity slice of a user record.
func (r *GormProfileRepository) Get(ctx context.Context, userID int64) (*profile.Profile, error) {
	var dto ProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("userID", userID)
		}
		return nil, err
	}

	return &profile.Profile{
		ID:     dto.ID,
		OpenID: dto.OpenID,
		Name:   dto.Name,
		Phone:  dto.Phone,
	}, nil
}
