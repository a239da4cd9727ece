// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the aggregates and read projections straight from the
// database; they never modify state.
package queries

import (
	"errors"
	"time"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery retrieves every order a courier can claim right
// now: ready for pickup, no courier assigned. This is the list couriers poll.
type GetAvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query for the claimable-orders feed.
func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// GetAvailableOrdersQueryResponse is one claimable order as shown to couriers.
// ReadySince lets the UI surface how long the order has been waiting.
type GetAvailableOrdersQueryResponse struct {
	ID          kernel.UUID
	Address     string
	Total       float64
	DeliveryFee float64
	ReadySince  time.Time
}
