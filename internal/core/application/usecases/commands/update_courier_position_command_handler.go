package commands

import (
	"context"

	"cvneat/internal/core/domain/model/order"
	"cvneat/internal/pkg/clock"
)

// UpdateCourierPositionCommandHandler records a courier position snapshot on
// the order being delivered. The domain only accepts positions while the
// order is en route (order.ErrTrackingInactive otherwise), and the timestamp
// is assigned here, server side, never taken from the report.
type UpdateCourierPositionCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

// NewUpdateCourierPositionCommandHandler creates a handler for position reports.
func NewUpdateCourierPositionCommandHandler(
	uowFactory OrderUoWFactory,
	clk clock.Clock,
) UpdateCourierPositionCommandHandler {
	return UpdateCourierPositionCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle processes one position report.
func (h *UpdateCourierPositionCommandHandler) Handle(ctx context.Context, cmd UpdateCourierPositionCommand) error {
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

	// Tracking stops before ownership is judged: a cancellation clears the
	// courier id, and a courier still reporting against that order should get
	// the quiet inactive signal, not a mismatch.
	if aggregate.Status() != order.EnRoute {
		return order.ErrTrackingInactive
	}

	if aggregate.Courier() == nil || !aggregate.Courier().IsEqual(cmd.CourierID()) {
		return ErrCourierMismatch
	}

	if err = aggregate.RecordCourierPosition(cmd.Lat(), cmd.Lng(), h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
