package commands

import (
	"context"
	"log/slog"

	"cvneat/internal/core/ports"
	"cvneat/internal/pkg/clock"
)

// CompleteDeliveryCommandHandler confirms a handover: it verifies the
// security code, marks the order Delivered and credits the courier's
// statistics with the delivery fee, all in one transaction, so the order
// cannot end up delivered without the courier being paid for it.
type CompleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery confirmation.
func NewCompleteDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With("component", "complete_delivery_handler"),
	}
}

// Handle processes the delivery confirmation.
// A wrong code returns order.ErrInvalidConfirmation and leaves the order en
// route; the courier may retry with the right code. A courier confirming an
// order assigned to someone else gets ErrCourierMismatch.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	if aggregate.Courier() == nil || !aggregate.Courier().IsEqual(cmd.CourierID()) {
		return ErrCourierMismatch
	}

	now := h.clock.Now()
	if err = aggregate.Complete(cmd.ConfirmationCode(), now); err != nil {
		return err
	}

	courierRepo := uow.CourierRepository()
	deliverer, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = deliverer.RecordDelivery(aggregate.DeliveryFee()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, deliverer); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("delivery completed",
		"order_id", cmd.OrderID().String(),
		"courier_id", cmd.CourierID().String(),
		"fee", aggregate.DeliveryFee())

	event := ports.OrderEvent{
		Type:       ports.EventOrderDelivered,
		OrderID:    cmd.OrderID().String(),
		CourierID:  cmd.CourierID().String(),
		OccurredAt: now,
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("failed to publish order event",
			"type", event.Type, "order_id", event.OrderID, "error", err)
	}

	return nil
}
