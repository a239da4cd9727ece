// Package ports defines the driven-side interfaces of the application core:
// repositories, the unit of work and the event publisher. These contracts sit
// between the domain and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"cvneat/internal/core/domain/model/courier"
	"cvneat/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate, including
	// availability and accumulated delivery statistics.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound (wrapped) when no such courier exists.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves all couriers currently flagged as taking
	// orders.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
