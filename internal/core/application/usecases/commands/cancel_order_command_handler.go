package commands

import (
	"context"
	"log/slog"

	"cvneat/internal/core/ports"
	"cvneat/internal/pkg/clock"
)

// CancelOrderCommandHandler withdraws an order on the customer's request.
// The domain restricts this to orders no courier has committed to: once a
// claim succeeds the customer path returns order.ErrAlreadyAssigned.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for customer cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With("component", "cancel_order_handler"),
	}
}

// Handle processes the cancellation request.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	now := h.clock.Now()
	if err = aggregate.CancelByCustomer(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := ports.OrderEvent{
		Type:       ports.EventOrderCancelled,
		OrderID:    cmd.OrderID().String(),
		OccurredAt: now,
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("failed to publish order event",
			"type", event.Type, "order_id", event.OrderID, "error", err)
	}

	return nil
}
