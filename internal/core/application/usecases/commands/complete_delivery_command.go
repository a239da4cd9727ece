package commands

import (
	"errors"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/pkg/guard"
)

var (
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
	ErrConfirmationCodeIsRequired = errors.New("confirmation code is required")
)

// CompleteDeliveryCommand represents a courier confirming the handover with
// the customer's security code.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	courierID        kernel.UUID
	confirmationCode string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to confirm a delivery.
func NewCompleteDeliveryCommand(
	orderID, courierID kernel.UUID,
	confirmationCode string,
) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setConfirmationCode(confirmationCode),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being delivered.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier confirming the handover.
func (c CompleteDeliveryCommand) CourierID() kernel.UUID {
	return c.courierID
}

// ConfirmationCode returns the code entered by the courier.
func (c CompleteDeliveryCommand) ConfirmationCode() string {
	return c.confirmationCode
}

func (c *CompleteDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteDeliveryCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *CompleteDeliveryCommand) setConfirmationCode(code string) error {
	if code == "" {
		return ErrConfirmationCodeIsRequired
	}

	c.confirmationCode = code
	return nil
}
