package ports

import (
	"context"
	"time"
)

// Order lifecycle event types published to the message broker.
const (
	EventOrderReady     = "order_ready"
	EventOrderClaimed   = "order_claimed"
	EventOrderDelivered = "order_delivered"
	EventOrderCancelled = "order_cancelled"
)

// OrderEvent is a lifecycle notification for downstream consumers
// (notifications, analytics). Events are published after the owning
// transaction commits; delivery is best effort and consumers must tolerate
// duplicates.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	CourierID  string    `json:"courier_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the contract for emitting order lifecycle events.
type EventPublisher interface {
	// Publish emits one event. Implementations must not block the caller
	// longer than the context allows.
	Publish(ctx context.Context, event OrderEvent) error

	// Close flushes buffered events and releases the underlying producer.
	Close()
}
