package order

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/pkg/errs"
)

const (
	// PreparationMinutesMin is the shortest preparation duration a restaurant can announce.
	PreparationMinutesMin = 1
	// PreparationMinutesMax is the longest preparation duration a restaurant can announce.
	PreparationMinutesMax = 240

	securityCodeDigits = 6
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// PositionSnapshot is the most recent courier-reported location for an order
// in delivery, together with the server-assigned timestamp of the report.
type PositionSnapshot struct {
	Point      kernel.GeoPoint
	RecordedAt time.Time
}

// Order is the aggregate root of the delivery lifecycle. It owns the status
// state machine and every guarded transition: all mutation goes through its
// methods, never through direct field writes, which is what keeps the
// lifecycle invariants intact under concurrent callers.
//
// Invariants:
//   - A courier id is present exactly in the claimed states (EnRoute, Delivered).
//   - The preparation start timestamp is written once, on Pending -> Preparing.
//   - Delivery fee and eligibility are fixed at creation and never recomputed.
//   - Status moves forward only, except into Cancelled.
type Order struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	customerID   kernel.UUID

	// courierID is nil until a claim succeeds.
	courierID *kernel.UUID

	deliveryAddress string
	deliveryPoint   kernel.GeoPoint
	items           []ItemLine

	// total and deliveryFee are fixed at creation time.
	total       float64
	deliveryFee float64
	paid        bool

	// securityCode is the 6-digit handover confirmation code shown to the customer.
	securityCode string

	preparationMinutes   int
	preparationStartedAt *time.Time

	courierPosition *PositionSnapshot

	status    Status
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a Pending order with validated contents.
//
// The checkout collaborator calls this after the delivery-zone check approved
// the address and payment was captured; deliveryFee is the fee computed at
// that moment and never changes afterwards. The order total is the item
// subtotal plus the delivery fee, rounded to cents once. A fresh six-digit
// security code is generated for the delivery handover.
func NewOrder(
	id, restaurantID, customerID kernel.UUID,
	deliveryAddress string,
	deliveryPoint kernel.GeoPoint,
	items []ItemLine,
	deliveryFee float64,
	paid bool,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paid:          paid,
		securityCode:  newSecurityCode(),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setCustomerID(customerID),
		o.setDeliveryAddress(deliveryAddress),
		o.setDeliveryPoint(deliveryPoint),
		o.setItems(items),
		o.setDeliveryFee(deliveryFee),
	); err != nil {
		return nil, err
	}

	subtotal := 0.0
	for _, line := range o.items {
		subtotal += line.Subtotal()
	}
	o.total = kernel.RoundToCents(subtotal + o.deliveryFee)

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running the
// creation-time business rules, but still enforcing structural invariants.
// In particular the courier/status consistency rule is checked here: a stored
// courier id on an unclaimed status is a data defect and must halt the read.
func RestoreOrder(
	id, restaurantID, customerID kernel.UUID,
	courierID *kernel.UUID,
	deliveryAddress string,
	deliveryPoint kernel.GeoPoint,
	items []ItemLine,
	total, deliveryFee float64,
	paid bool,
	securityCode string,
	status Status,
	preparationMinutes int,
	preparationStartedAt *time.Time,
	courierPosition *PositionSnapshot,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return nil, err
	}

	o := &Order{
		status:               status,
		total:                total,
		paid:                 paid,
		securityCode:         securityCode,
		preparationMinutes:   preparationMinutes,
		preparationStartedAt: preparationStartedAt,
		courierPosition:      courierPosition,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
		isConstructed:        true,
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		o.courierID = courierID
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setCustomerID(customerID),
		o.setDeliveryAddress(deliveryAddress),
		o.setDeliveryPoint(deliveryPoint),
		o.setItems(items),
		o.setDeliveryFee(deliveryFee),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RestaurantID returns the restaurant the order was placed with.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// CustomerID returns the ordering customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Courier returns the assigned courier's id, or nil before a successful claim.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// DeliveryAddress returns the raw delivery address supplied at checkout.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// DeliveryPoint returns the coordinates the address resolved to at creation.
func (o *Order) DeliveryPoint() kernel.GeoPoint {
	return o.deliveryPoint
}

// Items returns a copy of the order's item lines.
func (o *Order) Items() []ItemLine {
	items := make([]ItemLine, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the order total (items plus delivery fee), fixed at creation.
func (o *Order) Total() float64 {
	return o.total
}

// DeliveryFee returns the delivery fee fixed at creation.
func (o *Order) DeliveryFee() float64 {
	return o.deliveryFee
}

// IsPaid reports whether payment was captured for the order.
func (o *Order) IsPaid() bool {
	return o.paid
}

// SecurityCode returns the six-digit handover confirmation code.
func (o *Order) SecurityCode() string {
	return o.securityCode
}

// PreparationMinutes returns the duration announced by the restaurant,
// or 0 before preparation starts.
func (o *Order) PreparationMinutes() int {
	return o.preparationMinutes
}

// PreparationStartedAt returns when preparation began, or nil before that.
func (o *Order) PreparationStartedAt() *time.Time {
	return o.preparationStartedAt
}

// CourierPosition returns the latest courier position snapshot, or nil if no
// position was ever recorded.
func (o *Order) CourierPosition() *PositionSnapshot {
	return o.courierPosition
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last-transition timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// StartPreparation moves the order from Pending to Preparing.
//
// Business rules:
//   - Payment must have been captured (ErrOrderNotPaid otherwise).
//   - minutes must lie within [PreparationMinutesMin, PreparationMinutesMax].
//   - This is the only place the preparation start timestamp is written,
//     so it is set exactly once per order.
func (o *Order) StartPreparation(minutes int, now time.Time) error {
	if !o.paid {
		return ErrOrderNotPaid
	}
	if minutes < PreparationMinutesMin || minutes > PreparationMinutesMax {
		return errs.NewValueIsOutOfRangeError("preparation minutes", minutes,
			PreparationMinutesMin, PreparationMinutesMax)
	}

	newStatus, err := o.status.StartPreparation()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.preparationMinutes = minutes
	startedAt := now
	o.preparationStartedAt = &startedAt
	o.updatedAt = now
	return nil
}

// MarkReady moves the order from Preparing to ReadyForPickup.
//
// Both trigger paths, the elapsed countdown and the explicit restaurant
// signal, call this method, so it is idempotent: marking an order that is
// already ready is a no-op, not an error, and produces no side effects.
func (o *Order) MarkReady(now time.Time) error {
	if o.status == ReadyForPickup {
		return nil
	}

	newStatus, err := o.status.MarkReady()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Claim assigns the courier and moves the order to EnRoute.
//
// This is the in-memory half of the claim protocol; under concurrent claim
// attempts the atomic conditional write in the repository decides the winner,
// and this method re-expresses the same precondition for restored aggregates
// and tests: the order must be ReadyForPickup with no courier assigned.
func (o *Order) Claim(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil {
		return ErrOrderAlreadyClaimed
	}

	newStatus, err := o.status.Claim()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.updatedAt = now
	return nil
}

// Complete moves the order from EnRoute to Delivered after verifying the
// confirmation code supplied by the courier against the order's security code.
// A mismatch returns ErrInvalidConfirmation and leaves the state unchanged.
func (o *Order) Complete(confirmationCode string, now time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	if confirmationCode != o.securityCode {
		return ErrInvalidConfirmation
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// CancelByCustomer cancels the order on the customer's request.
//
// Permitted only while the order is Pending or Preparing and no courier is
// assigned. Once a courier id is present the customer can no longer cancel
// and ErrAlreadyAssigned is returned.
func (o *Order) CancelByCustomer(now time.Time) error {
	if o.courierID != nil {
		return ErrAlreadyAssigned
	}
	if o.status != Pending && o.status != Preparing {
		return invalidTransition(o.status, Cancelled)
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// CancelUnclaimed cancels an order that no courier has claimed. This is the
// expiration-sweeper path; it is idempotent (cancelling an already cancelled
// order is a no-op) and refuses to touch claimed orders.
func (o *Order) CancelUnclaimed(now time.Time) error {
	if o.status == Cancelled {
		return nil
	}
	if o.courierID != nil {
		return ErrAlreadyAssigned
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// CancelByAdmin cancels the order regardless of claim state (support
// intervention). The courier assignment is cleared so the stored record keeps
// the courier/status consistency invariant; the claim audit log retains the
// assignment history.
func (o *Order) CancelByAdmin(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = nil
	o.updatedAt = now
	return nil
}

// RecordCourierPosition stores a courier-reported location snapshot.
//
// Positions are accepted only while the order is EnRoute; for any other
// status ErrTrackingInactive is returned and the stored snapshot is left
// untouched, so stale reports cannot leak into completed or cancelled orders.
// The timestamp is server-assigned.
func (o *Order) RecordCourierPosition(lat, lng float64, now time.Time) error {
	if o.status != EnRoute {
		return ErrTrackingInactive
	}

	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return err
	}

	o.courierPosition = &PositionSnapshot{Point: point, RecordedAt: now}
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setDeliveryPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	o.deliveryPoint = point
	return nil
}

func (o *Order) setItems(items []ItemLine) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for i, line := range items {
		if err := line.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	o.items = make([]ItemLine, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee",
			fmt.Errorf("%f is negative", fee))
	}
	o.deliveryFee = fee
	return nil
}

// newSecurityCode generates a random six-digit code, zero-padded.
func newSecurityCode() string {
	code := rand.IntN(900000) + 100000 //nolint:gosec // handover code, not a credential
	return fmt.Sprintf("%0*d", securityCodeDigits, code)
}
