package queries

import (
	"errors"
	"time"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery retrieves the customer-facing tracking view of one
// order: its lifecycle status, the derived preparation countdown and the last
// reported courier position.
type GetOrderTrackingQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery creates a tracking query for one order.
func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	query := GetOrderTrackingQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderTrackingQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderID returns the tracked order's identifier.
func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderTrackingQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// TrackingPosition is the last courier-reported location, present only after
// at least one report while the order was en route.
type TrackingPosition struct {
	Lat        float64
	Lng        float64
	RecordedAt time.Time
}

// GetOrderTrackingQueryResponse is the tracking view of one order.
//
// The preparation fields are derived at read time from the stored countdown
// start and duration. RemainingSeconds is floored at zero; Band is one of
// "normal", "urgent", "very_urgent", "ready".
type GetOrderTrackingQueryResponse struct {
	OrderID            kernel.UUID
	Status             string
	PreparationStarted bool
	RemainingSeconds   int64
	Band               string
	Position           *TrackingPosition
	Total              float64
	DeliveryFee        float64
}
