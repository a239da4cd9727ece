package order

import (
	"errors"
	"fmt"

	"cvneat/internal/pkg/errs"
	"cvneat/internal/pkg/guard"
)

// ErrItemLineIsNotConstructed is returned when an ItemLine was not created
// through the NewItemLine constructor.
var ErrItemLineIsNotConstructed = errs.NewValueIsRequiredError(
	"item line must be created via NewItemLine constructor")

// ItemLine is an immutable value object describing one dish on an order:
// its name, unit price and quantity.
type ItemLine struct { //nolint:recvcheck //pointer receivers on private setters for construction-time validation
	name      string
	unitPrice float64
	quantity  int
	guard     guard.ConstructorGuard
}

// NewItemLine creates a validated ItemLine.
// Name must be non-empty, unit price non-negative and quantity positive.
func NewItemLine(name string, unitPrice float64, quantity int) (ItemLine, error) {
	line := ItemLine{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setName(name),
		line.setUnitPrice(unitPrice),
		line.setQuantity(quantity),
	); err != nil {
		return ItemLine{}, err
	}

	return line, nil
}

// Validate checks if the ItemLine was properly constructed.
func (l ItemLine) Validate() error {
	return l.guard.Validate(ErrItemLineIsNotConstructed)
}

// Name returns the dish name.
func (l ItemLine) Name() string {
	return l.name
}

// UnitPrice returns the price of a single unit.
func (l ItemLine) UnitPrice() float64 {
	return l.unitPrice
}

// Quantity returns the ordered quantity.
func (l ItemLine) Quantity() int {
	return l.quantity
}

// Subtotal returns unit price times quantity, at full floating precision.
// Rounding happens once, on the order total.
func (l ItemLine) Subtotal() float64 {
	return l.unitPrice * float64(l.quantity)
}

func (l *ItemLine) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	l.name = name
	return nil
}

func (l *ItemLine) setUnitPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%f is negative", price))
	}
	l.unitPrice = price
	return nil
}

func (l *ItemLine) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}
