package order

import "errors"

// Expected business outcomes of the order lifecycle. Callers classify them with
// errors.Is; none of them indicate a system failure.
var (
	// ErrInvalidTransition is returned when the current status does not permit
	// the requested transition.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrOrderAlreadyClaimed is returned when a claim attempt loses the race:
	// another courier is already assigned to the order.
	ErrOrderAlreadyClaimed = errors.New("order already claimed by another courier")

	// ErrOrderNotClaimable is returned when an order can no longer be claimed
	// for any other reason (cancelled, expired, not yet ready).
	ErrOrderNotClaimable = errors.New("order is not claimable")

	// ErrAlreadyAssigned is returned when a customer attempts to cancel an
	// order after a courier has been assigned.
	ErrAlreadyAssigned = errors.New("a courier is already assigned to the order")

	// ErrInvalidConfirmation is returned when the delivery confirmation code
	// does not match the order's security code. The order state is unchanged.
	ErrInvalidConfirmation = errors.New("delivery confirmation code mismatch")

	// ErrOrderNotPaid is returned when preparation is requested for an order
	// whose payment has not been captured.
	ErrOrderNotPaid = errors.New("order has not been paid")

	// ErrTrackingInactive signals that a courier position report was ignored
	// because the order is not currently en route.
	ErrTrackingInactive = errors.New("position tracking is not active for this order")
)
