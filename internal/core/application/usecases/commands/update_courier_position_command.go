package commands

import (
	"errors"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/pkg/guard"
)

var ErrUpdateCourierPositionCommandIsNotConstructed = errors.New(
	"UpdateCourierPositionCommand must be created via NewUpdateCourierPositionCommand constructor",
)

// UpdateCourierPositionCommand represents a courier reporting their location
// while delivering an order. Coordinates are range-checked by the domain when
// the snapshot is recorded.
type UpdateCourierPositionCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	lat       float64
	lng       float64

	guard guard.ConstructorGuard
}

// NewUpdateCourierPositionCommand creates a command for one position report.
func NewUpdateCourierPositionCommand(
	orderID, courierID kernel.UUID,
	lat, lng float64,
) (UpdateCourierPositionCommand, error) {
	cmd := UpdateCourierPositionCommand{
		lat:   lat,
		lng:   lng,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return UpdateCourierPositionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierPositionCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierPositionCommandIsNotConstructed)
}

// OrderID returns the order the position report belongs to.
func (c UpdateCourierPositionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the reporting courier.
func (c UpdateCourierPositionCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Lat returns the reported latitude.
func (c UpdateCourierPositionCommand) Lat() float64 {
	return c.lat
}

// Lng returns the reported longitude.
func (c UpdateCourierPositionCommand) Lng() float64 {
	return c.lng
}

func (c *UpdateCourierPositionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateCourierPositionCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
