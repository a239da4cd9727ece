package commands

import (
	"context"
	"log/slog"

	"cvneat/internal/core/domain/model/order"
	"cvneat/internal/core/ports"
	"cvneat/internal/pkg/clock"
)

// ClaimOrderCommandHandler decides which courier gets an order.
//
// The winner is picked by a single conditional update in the repository:
// assign the courier if and only if the order is still ReadyForPickup with no
// courier. The database serializes concurrent attempts, so exactly one
// succeeds regardless of how many couriers race; there is no lock, no queue
// and no retry loop in the application.
//
// Every attempt, winning or losing, is appended to the claim audit log inside
// the same transaction. When the conditional update matches nothing, the
// handler re-reads the order to tell the caller why: a courier already on the
// order means a lost race (ErrOrderAlreadyClaimed), anything else means the
// order left the claimable state (ErrOrderNotClaimable).
type ClaimOrderCommandHandler struct {
	uowFactory ClaimUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

// NewClaimOrderCommandHandler creates a handler for claim attempts.
func NewClaimOrderCommandHandler(
	uowFactory ClaimUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With("component", "claim_order_handler"),
	}
}

// Handle processes one claim attempt.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	claimant, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !claimant.IsAvailable() {
		return ErrCourierNotAvailable
	}

	now := h.clock.Now()
	orderRepo := uow.OrderRepository()

	won, err := orderRepo.TryClaim(ctx, cmd.OrderID(), cmd.CourierID(), now)
	if err != nil {
		return err
	}

	// The attempt is recorded either way; contention is worth auditing.
	attempt := ports.ClaimAttempt{
		OrderID:   cmd.OrderID(),
		CourierID: cmd.CourierID(),
		Won:       won,
		At:        now,
	}
	if err = uow.ClaimLogRepository().Add(ctx, attempt); err != nil {
		return err
	}

	if !won {
		outcome := h.diagnoseLoss(ctx, orderRepo, cmd)
		if err = uow.Commit(ctx); err != nil {
			return err
		}
		return outcome
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("order claimed",
		"order_id", cmd.OrderID().String(), "courier_id", cmd.CourierID().String())

	event := ports.OrderEvent{
		Type:       ports.EventOrderClaimed,
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

// diagnoseLoss re-reads the order to classify a failed conditional update.
// Retrying the same claim after someone else won keeps yielding
// ErrOrderAlreadyClaimed, including for the courier who already holds the
// order: claiming is not idempotent.
func (h *ClaimOrderCommandHandler) diagnoseLoss(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	cmd ClaimOrderCommand,
) error {
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.Courier() != nil {
		return order.ErrOrderAlreadyClaimed
	}

	return order.ErrOrderNotClaimable
}
