package commands

import (
	"context"
	"log/slog"

	"cvneat/internal/core/domain/model/order"
	"cvneat/internal/core/ports"
	"cvneat/internal/pkg/clock"
)

// MarkReadyCommandHandler transitions an order to ReadyForPickup and notifies
// couriers that a new order is up for claiming.
type MarkReadyCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

// NewMarkReadyCommandHandler creates a handler for the ready-for-pickup signal.
func NewMarkReadyCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) MarkReadyCommandHandler {
	return MarkReadyCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With("component", "mark_ready_handler"),
	}
}

// Handle processes the ready signal. Marking an already ready order is a
// no-op that publishes nothing, so the timer path and the manual path can
// both fire without duplicating the notification.
func (h *MarkReadyCommandHandler) Handle(ctx context.Context, cmd MarkReadyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	alreadyReady := aggregate.Status() == order.ReadyForPickup

	now := h.clock.Now()
	if err = aggregate.MarkReady(now); err != nil {
		return err
	}

	if alreadyReady {
		return nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, ports.OrderEvent{
		Type:       ports.EventOrderReady,
		OrderID:    aggregate.ID().String(),
		OccurredAt: now,
	})

	return nil
}

// publish emits the event best effort: the state change already committed, so
// a broker hiccup is logged, not surfaced to the caller.
func (h *MarkReadyCommandHandler) publish(ctx context.Context, event ports.OrderEvent) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("failed to publish order event",
			"type", event.Type, "order_id", event.OrderID, "error", err)
	}
}
