package courier

import (
	"errors"
	"fmt"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/pkg/errs"
	"cvneat/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is the aggregate root for a delivery courier: identity, availability
// and running delivery statistics.
//
// Key responsibilities:
//   - Managing courier identity (ID, name)
//   - Tracking availability for claiming orders
//   - Accumulating delivery counters and earnings as deliveries complete
//
// Business rules:
//   - Courier must have a valid UUID and non-empty name
//   - Statistics only grow, one completed delivery at a time
//   - Earnings accumulate the delivery fee of each completed order,
//     rounded to cents after every addition
type Courier struct {
	id   kernel.UUID
	name string

	// available reports whether the courier is currently taking orders.
	available bool

	totalDeliveries int
	totalEarnings   float64

	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with zeroed statistics.
// This is the only way to create a valid fresh Courier instance.
// New couriers start unavailable; they flip themselves available when
// they go on shift.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// including its availability flag and accumulated statistics.
func RestoreCourier(
	id kernel.UUID,
	name string,
	available bool,
	totalDeliveries int,
	totalEarnings float64,
) (*Courier, error) {
	courier := &Courier{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setTotalDeliveries(totalDeliveries),
		courier.setTotalEarnings(totalEarnings),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks if the Courier was properly constructed.
// The zero value of Courier is invalid and will fail this validation.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// IsAvailable reports whether the courier is currently taking orders.
func (c *Courier) IsAvailable() bool {
	return c.available
}

// TotalDeliveries returns the number of deliveries the courier completed.
func (c *Courier) TotalDeliveries() int {
	return c.totalDeliveries
}

// TotalEarnings returns the courier's accumulated delivery fees, in euros.
func (c *Courier) TotalEarnings() float64 {
	return c.totalEarnings
}

// SetAvailability flips the courier's availability. Setting the current value
// again is a no-op, not an error.
func (c *Courier) SetAvailability(available bool) {
	c.available = available
}

// RecordDelivery accumulates one completed delivery into the courier's
// statistics: the delivery counter grows by one and the order's delivery fee
// is added to the earnings, re-rounded to cents so repeated additions cannot
// drift.
func (c *Courier) RecordDelivery(deliveryFee float64) error {
	if deliveryFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee",
			fmt.Errorf("%f is negative", deliveryFee))
	}

	c.totalDeliveries++
	c.totalEarnings = kernel.RoundToCents(c.totalEarnings + deliveryFee)
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setTotalDeliveries(total int) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total deliveries",
			fmt.Errorf("%d is negative", total))
	}

	c.totalDeliveries = total
	return nil
}

func (c *Courier) setTotalEarnings(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total earnings",
			fmt.Errorf("%f is negative", total))
	}

	c.totalEarnings = total
	return nil
}
