package commands

import (
	"context"
	"log/slog"
	"time"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/domain/model/order"
	"cvneat/internal/core/ports"
	"cvneat/internal/pkg/clock"
)

// ExpireOrdersCommandHandler runs one sweep over the order table: it first
// promotes Preparing orders whose countdown elapsed to ReadyForPickup (the
// automatic counterpart of the restaurant's manual ready signal), then cancels
// ready orders no courier claimed within the expiration window.
//
// The cancellation pass races against couriers: between listing the candidates
// and cancelling them, any order may still be claimed. Each cancellation is
// therefore its own conditional update with the same guard as the claim
// (still ReadyForPickup, still no courier), and only orders that update
// counts toward the sweep's result. An order is never cancelled out from
// under a courier who just won it.
type ExpireOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

// NewExpireOrdersCommandHandler creates a handler for expiration sweeps.
func NewExpireOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) ExpireOrdersCommandHandler {
	return ExpireOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With("component", "expire_orders_handler"),
	}
}

// Handle runs one sweep and returns the number of orders it cancelled.
// A zero count is the normal quiet outcome, not an error.
func (h *ExpireOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	cutoff := now.Add(-cmd.Expiration())
	orderRepo := uow.OrderRepository()

	promoted, err := h.promoteDue(ctx, orderRepo, now)
	if err != nil {
		return 0, err
	}

	candidates, err := orderRepo.FindExpiredUnclaimed(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := make([]kernel.UUID, 0, len(candidates))
	for _, orderID := range candidates {
		done, err := orderRepo.CancelIfUnclaimed(ctx, orderID, now)
		if err != nil {
			return 0, err
		}
		if done {
			cancelled = append(cancelled, orderID)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, orderID := range promoted {
		h.publish(ctx, ports.OrderEvent{
			Type:       ports.EventOrderReady,
			OrderID:    orderID.String(),
			OccurredAt: now,
		})
	}
	for _, orderID := range cancelled {
		h.publish(ctx, ports.OrderEvent{
			Type:       ports.EventOrderCancelled,
			OrderID:    orderID.String(),
			OccurredAt: now,
		})
	}

	return len(cancelled), nil
}

// promoteDue moves every Preparing order past its deadline to ReadyForPickup.
// MarkReady is idempotent, so racing the restaurant's manual ready signal is
// harmless; an order cancelled between listing and loading is skipped.
func (h *ExpireOrdersCommandHandler) promoteDue(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	now time.Time,
) ([]kernel.UUID, error) {
	due, err := orderRepo.FindPreparationElapsed(ctx, now)
	if err != nil {
		return nil, err
	}

	promoted := make([]kernel.UUID, 0, len(due))
	for _, orderID := range due {
		aggregate, err := orderRepo.Get(ctx, orderID)
		if err != nil {
			return nil, err
		}

		if aggregate.Status() != order.Preparing {
			continue
		}
		if err = aggregate.MarkReady(now); err != nil {
			continue
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}

		h.logger.Info("preparation elapsed, order marked ready",
			"order_id", orderID.String())
		promoted = append(promoted, orderID)
	}

	return promoted, nil
}

// publish emits one event best effort: the sweep already committed, so a
// broker hiccup is logged, not surfaced.
func (h *ExpireOrdersCommandHandler) publish(ctx context.Context, event ports.OrderEvent) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("failed to publish order event",
			"type", event.Type, "order_id", event.OrderID, "error", err)
	}
}
