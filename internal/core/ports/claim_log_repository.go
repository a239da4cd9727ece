package ports

import (
	"context"
	"time"

	"cvneat/internal/core/domain/model/kernel"
)

// ClaimAttempt is one row of the append-only claim audit log: which courier
// tried to claim which order, whether they won, and when. Losing attempts are
// recorded too: they are the evidence of contention.
type ClaimAttempt struct {
	OrderID   kernel.UUID
	CourierID kernel.UUID
	Won       bool
	At        time.Time
}

// ClaimLogRepository defines the persistence contract for the claim audit log.
// The log is append-only; nothing ever updates or deletes attempts.
type ClaimLogRepository interface {
	// Add appends one claim attempt to the log.
	Add(ctx context.Context, attempt ClaimAttempt) error

	// GetByOrder retrieves every recorded attempt for the order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]ClaimAttempt, error)
}
