package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cvneat/internal/core/domain/model/order"
	"cvneat/internal/pkg/clock"
	"cvneat/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler builds the customer tracking view.
//
// The preparation countdown is never stored: every read re-derives it from
// the stored start timestamp and announced duration through the same domain
// derivation the aggregate uses. Polling once or every second therefore gives
// consistent answers, and a restart cannot skew the countdown.
type GetOrderTrackingQueryHandler struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewGetOrderTrackingQueryHandler creates a handler for tracking reads.
func NewGetOrderTrackingQueryHandler(db *gorm.DB, clk clock.Clock) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db, clock: clk}
}

// Handle executes the tracking read for one order.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			preparation_minutes,
			preparation_started_at,
			courier_position_lat,
			courier_position_lng,
			courier_position_at,
			total,
			delivery_fee
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		status             int
		preparationMinutes int
		startedAt          sql.NullTime
		positionLat        sql.NullFloat64
		positionLng        sql.NullFloat64
		positionAt         sql.NullTime
		total              float64
		deliveryFee        float64
	)

	err := row.Scan(
		&status,
		&preparationMinutes,
		&startedAt,
		&positionLat,
		&positionLng,
		&positionAt,
		&total,
		&deliveryFee,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError(
			"order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	orderStatus := order.Status(status)
	if err = orderStatus.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	var startedAtPtr *time.Time
	if startedAt.Valid {
		startedAtPtr = &startedAt.Time
	}
	state := order.DerivePreparationState(
		orderStatus, startedAtPtr, preparationMinutes, h.clock.Now())

	resp := GetOrderTrackingQueryResponse{
		OrderID:            query.OrderID(),
		Status:             orderStatus.String(),
		PreparationStarted: state.Started,
		RemainingSeconds:   int64(state.Remaining / time.Second),
		Band:               state.Band.String(),
		Total:              total,
		DeliveryFee:        deliveryFee,
	}

	if positionLat.Valid && positionLng.Valid && positionAt.Valid {
		resp.Position = &TrackingPosition{
			Lat:        positionLat.Float64,
			Lng:        positionLng.Float64,
			RecordedAt: positionAt.Time,
		}
	}

	return resp, nil
}
