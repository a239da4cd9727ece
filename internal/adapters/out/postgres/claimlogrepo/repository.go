package claimlogrepo

import (
	"context"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/ports"

	"gorm.io/gorm"
)

// GormClaimLogRepository implements ClaimLogRepository using GORM.
type GormClaimLogRepository struct {
	db *gorm.DB
}

// NewGormClaimLogRepository creates a new GORM claim log repository.
func NewGormClaimLogRepository(db *gorm.DB) *GormClaimLogRepository {
	return &GormClaimLogRepository{db: db}
}

// Add appends one claim attempt to the log.
func (r *GormClaimLogRepository) Add(ctx context.Context, attempt ports.ClaimAttempt) error {
	if err := attempt.OrderID.Validate(); err != nil {
		return err
	}
	if err := attempt.CourierID.Validate(); err != nil {
		return err
	}

	dto := fromPort(attempt)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOrder retrieves every recorded attempt for the order, oldest first.
func (r *GormClaimLogRepository) GetByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]ports.ClaimAttempt, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ClaimAttemptDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	attempts := make([]ports.ClaimAttempt, 0, len(dtos))
	for _, dto := range dtos {
		attempt, err := toPort(dto)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}

	return attempts, nil
}
