package ports

import (
	"context"
	"time"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Besides the usual aggregate CRUD it carries the two conditional writes the
// claim protocol and the expiration sweep rely on: both must be atomic
// compare-and-set statements at the storage level, because correctness under
// concurrent couriers depends on the database deciding the winner, not the
// application.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound (wrapped) when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllReadyUnclaimed retrieves every order waiting for a courier:
	// status ReadyForPickup with no courier assigned. This feeds the
	// couriers' available-orders list.
	GetAllReadyUnclaimed(ctx context.Context) ([]*order.Order, error)

	// TryClaim atomically assigns the courier to the order if and only if it
	// is still ReadyForPickup with no courier. Returns true when this call
	// won the claim; false when the guarded update matched no row. A false
	// result says nothing about why; the caller re-reads the order to
	// distinguish a lost race from an unclaimable order.
	TryClaim(ctx context.Context, orderID, courierID kernel.UUID, at time.Time) (bool, error)

	// FindPreparationElapsed returns the ids of Preparing orders whose
	// announced countdown has fully elapsed at the given instant. They are
	// due for the automatic promotion to ReadyForPickup.
	FindPreparationElapsed(ctx context.Context, now time.Time) ([]kernel.UUID, error)

	// FindExpiredUnclaimed returns the ids of orders that became ready
	// before the given cutoff and still have no courier. Candidates only:
	// each one must still pass CancelIfUnclaimed before it counts.
	FindExpiredUnclaimed(ctx context.Context, readyBefore time.Time) ([]kernel.UUID, error)

	// CancelIfUnclaimed atomically cancels the order if it is still
	// ReadyForPickup with no courier. Returns true when the order was
	// cancelled by this call, false when a courier claimed it in the
	// meantime (or it is no longer ready).
	CancelIfUnclaimed(ctx context.Context, orderID kernel.UUID, at time.Time) (bool, error)
}
