package commands

import (
	"errors"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrAddressIsRequired = errors.New("delivery address is required")
	ErrItemsAreRequired  = errors.New("at least one order item is required")
)

// ItemInput is one ordered dish as submitted at checkout.
type ItemInput struct {
	Name      string
	UnitPrice float64
	Quantity  int
}

// CreateOrderCommand represents a request to place a new order.
// Encapsulates the parties, the delivery address, the ordered items and the
// payment status captured at checkout.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	restaurantID kernel.UUID
	customerID   kernel.UUID
	address      string
	items        []ItemInput
	paid         bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, the address and the item list; per-item business
// validation happens in the domain when the aggregate is built.
func NewCreateOrderCommand(
	orderID, restaurantID, customerID kernel.UUID,
	address string,
	items []ItemInput,
	paid bool,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		paid:  paid,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
		cmd.setCustomerID(customerID),
		cmd.setAddress(address),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the restaurant the order is placed with.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Address returns the delivery address as submitted.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// Items returns the submitted item lines.
func (c CreateOrderCommand) Items() []ItemInput {
	items := make([]ItemInput, len(c.items))
	copy(items, c.items)
	return items
}

// IsPaid reports whether payment was captured at checkout.
func (c CreateOrderCommand) IsPaid() bool {
	return c.paid
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = make([]ItemInput, len(items))
	copy(c.items, items)
	return nil
}
