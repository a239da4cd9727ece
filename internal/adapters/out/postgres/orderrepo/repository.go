package orderrepo

import (
	"context"
	"errors"
	"time"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/domain/model/order"
	"cvneat/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// mutableColumns are the order columns that change after creation. Item lines,
// money and identity are fixed at checkout and never rewritten; listing the
// mutable set explicitly also forces GORM to persist zero values such as a
// cleared courier id.
var mutableColumns = []string{
	"courier_id",
	"status",
	"preparation_minutes",
	"preparation_started_at",
	"courier_position_lat",
	"courier_position_lng",
	"courier_position_at",
	"updated_at",
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, item lines included.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Only lifecycle columns are
// written; item lines are immutable after creation.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select(mutableColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllReadyUnclaimed retrieves every order waiting for a courier, oldest first.
func (r *GormOrderRepository) GetAllReadyUnclaimed(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ? AND courier_id IS NULL", int(order.ReadyForPickup)).
		Order("updated_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// TryClaim atomically assigns the courier to the order. The WHERE clause is
// the whole claim protocol: the row is updated only while it is still ready
// with no courier, so under concurrent attempts the database picks exactly
// one winner. RowsAffected tells the caller whether this attempt was it.
func (r *GormOrderRepository) TryClaim(
	ctx context.Context,
	orderID, courierID kernel.UUID,
	at time.Time,
) (bool, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND courier_id IS NULL",
			orderID.Bytes(), int(order.ReadyForPickup)).
		Updates(map[string]any{
			"courier_id": courierID.Bytes(),
			"status":     int(order.EnRoute),
			"updated_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// FindPreparationElapsed returns the ids of Preparing orders whose countdown
// deadline has passed, oldest deadline first.
func (r *GormOrderRepository) FindPreparationElapsed(
	ctx context.Context,
	now time.Time,
) ([]kernel.UUID, error) {
	var rawIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("status = ? AND preparation_started_at IS NOT NULL"+
			" AND preparation_started_at + make_interval(mins => preparation_minutes) <= ?",
			int(order.Preparing), now).
		Order("preparation_started_at").
		Pluck("id", &rawIDs).Error; err != nil {
		return nil, err
	}

	return toKernelIDs(rawIDs)
}

// FindExpiredUnclaimed returns the ids of orders still waiting for a courier
// whose last transition (becoming ready) happened before the cutoff.
func (r *GormOrderRepository) FindExpiredUnclaimed(
	ctx context.Context,
	readyBefore time.Time,
) ([]kernel.UUID, error) {
	var rawIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("status = ? AND courier_id IS NULL AND updated_at < ?",
			int(order.ReadyForPickup), readyBefore).
		Order("updated_at").
		Pluck("id", &rawIDs).Error; err != nil {
		return nil, err
	}

	return toKernelIDs(rawIDs)
}

func toKernelIDs(rawIDs []uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// CancelIfUnclaimed atomically cancels the order if it is still ready with no
// courier. Uses the same guarded-update shape as TryClaim, so the sweep can
// never cancel an order a courier claimed between candidate listing and here.
func (r *GormOrderRepository) CancelIfUnclaimed(
	ctx context.Context,
	orderID kernel.UUID,
	at time.Time,
) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND courier_id IS NULL",
			orderID.Bytes(), int(order.ReadyForPickup)).
		Updates(map[string]any{
			"status":     int(order.Cancelled),
			"updated_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
