package orderrepo

import (
	"context"
	"errors"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its line items in one insert batch and assigns
// the generated surrogate id back onto the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := aggregate.AssignID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update applies a sparse patch to the identified order: only the patch's
// non-nil fields are written, all other columns keep their stored values.
func (r *GormOrderRepository) Update(ctx context.Context, id int64, patch order.Patch) error {
	updates := patchToUpdates(patch)
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderID", id)
	}

	return nil
}

// Get retrieves an order with its line items by surrogate id.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumberAndUser retrieves an order by order number scoped to the owning
// user. An order belonging to another user reports not found.
func (r *GormOrderRepository) GetByNumberAndUser(ctx context.Context, number string, userID int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		First(&dto, "number = ? AND user_id = ?", number, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNumber", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// List returns one page of orders matching the query, newest first, together
// with the total match count.
func (r *GormOrderRepository) List(ctx context.Context, query ports.OrdersPageQuery) ([]*order.Order, int64, error) {
	tx := r.db.WithContext(ctx).Model(&OrderDTO{})
	if query.UserID != nil {
		tx = tx.Where("user_id = ?", *query.UserID)
	}
	if query.Status != nil {
		tx = tx.Where("status = ?", *query.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dtos []OrderDTO
	err := tx.Preload("Items").
		Order("order_time DESC, id DESC").
		Limit(query.PageSize).
		Offset((query.Page - 1) * query.PageSize).
		Find(&dtos).Error
	if err != nil {
		return nil, 0, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, 0, mapErr
		}
		orders = append(orders, aggregate)
	}

	return orders, total, nil
}

// ListOutstanding returns orders in the given status whose order time
// predates the cutoff, oldest first.
func (r *GormOrderRepository) ListOutstanding(ctx context.Context, status order.Status, before time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where("status = ? AND order_time < ?", status, before).
		Order("order_time").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

// Count returns the number of orders matching the stats query.
func (r *GormOrderRepository) Count(ctx context.Context, query ports.OrderStatsQuery) (int64, error) {
	var total int64
	if err := r.statsScope(ctx, query).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// SumAmount returns the total order amount over the stats query matches.
// An empty match set sums to zero.
func (r *GormOrderRepository) SumAmount(ctx context.Context, query ports.OrderStatsQuery) (kernel.Money, error) {
	var sum decimal.Decimal
	err := r.statsScope(ctx, query).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return kernel.Money{}, err
	}

	return kernel.NewMoney(sum)
}

func (r *GormOrderRepository) statsScope(ctx context.Context, query ports.OrderStatsQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&OrderDTO{})
	if query.Status != nil {
		tx = tx.Where("status = ?", *query.Status)
	}
	if query.Begin != nil {
		tx = tx.Where("order_time >= ?", *query.Begin)
	}
	if query.End != nil {
		tx = tx.Where("order_time < ?", *query.End)
	}
	return tx
}

// patchToUpdates maps the patch's non-nil fields to their column names.
func patchToUpdates(patch order.Patch) map[string]any {
	updates := make(map[string]any)
	if patch.Status != nil {
		updates["status"] = int(*patch.Status)
	}
	if patch.PayStatus != nil {
		updates["pay_status"] = int(*patch.PayStatus)
	}
	if patch.CheckoutTime != nil {
		updates["checkout_time"] = *patch.CheckoutTime
	}
	if patch.CancelTime != nil {
		updates["cancel_time"] = *patch.CancelTime
	}
	if patch.DeliveryTime != nil {
		updates["delivery_time"] = *patch.DeliveryTime
	}
	if patch.CancelReason != nil {
		updates["cancel_reason"] = *patch.CancelReason
	}
	if patch.RejectionReason != nil {
		updates["rejection_reason"] = *patch.RejectionReason
	}
	return updates
}
