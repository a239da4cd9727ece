package commands

import (
	"errors"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/pkg/guard"
)

var ErrMarkReadyCommandIsNotConstructed = errors.New(
	"MarkReadyCommand must be created via NewMarkReadyCommand constructor",
)

// MarkReadyCommand represents the signal that an order is ready for pickup,
// either because the restaurant pressed the button or because the preparation
// countdown elapsed. Both paths carry the same command, and the handler is
// idempotent across them.
type MarkReadyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkReadyCommand creates a command to mark an order ready for pickup.
func NewMarkReadyCommand(orderID kernel.UUID) (MarkReadyCommand, error) {
	cmd := MarkReadyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return MarkReadyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyCommandIsNotConstructed)
}

// OrderID returns the order being marked ready.
func (c MarkReadyCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *MarkReadyCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
