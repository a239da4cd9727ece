package commands

import (
	"errors"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/domain/model/order"
	"cvneat/internal/pkg/guard"
)

var ErrStartPreparationCommandIsNotConstructed = errors.New(
	"StartPreparationCommand must be created via NewStartPreparationCommand constructor",
)

// StartPreparationCommand represents the restaurant accepting an order and
// announcing how long preparation will take.
type StartPreparationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	minutes int

	guard guard.ConstructorGuard
}

// NewStartPreparationCommand creates a command to accept an order.
// Minutes must lie within the domain's allowed preparation range.
func NewStartPreparationCommand(orderID kernel.UUID, minutes int) (StartPreparationCommand, error) {
	cmd := StartPreparationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMinutes(minutes),
	); err != nil {
		return StartPreparationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPreparationCommand) Validate() error {
	return c.guard.Validate(ErrStartPreparationCommandIsNotConstructed)
}

// OrderID returns the order being accepted.
func (c StartPreparationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Minutes returns the announced preparation duration.
func (c StartPreparationCommand) Minutes() int {
	return c.minutes
}

func (c *StartPreparationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartPreparationCommand) setMinutes(minutes int) error {
	if minutes < order.PreparationMinutesMin || minutes > order.PreparationMinutesMax {
		return errors.New("preparation minutes out of range")
	}

	c.minutes = minutes
	return nil
}
