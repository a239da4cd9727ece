package commands

import (
	"context"

	"cvneat/internal/pkg/clock"
)

// StartPreparationCommandHandler moves an order from Pending to Preparing and
// stamps the preparation countdown start.
type StartPreparationCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

// NewStartPreparationCommandHandler creates a handler for order acceptance.
func NewStartPreparationCommandHandler(
	uowFactory OrderUoWFactory,
	clk clock.Clock,
) StartPreparationCommandHandler {
	return StartPreparationCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle processes the acceptance command. The domain enforces the payment
// precondition and the single-write rule for the countdown start timestamp.
func (h *StartPreparationCommandHandler) Handle(ctx context.Context, cmd StartPreparationCommand) error {
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

	if err = aggregate.StartPreparation(cmd.Minutes(), h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
