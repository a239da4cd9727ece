package order

import (
	"fmt"

	"cvneat/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so that orders always
// follow the business workflow, and transition legality lives in one place
// instead of ad hoc string comparisons in handlers.
//
// State transitions:
//
//	Pending ──> Preparing ──> ReadyForPickup ──> EnRoute ──> Delivered
//	   │            │               │               │
//	   └────────────┴───────────────┴───────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Transitions never move backward.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order awaits restaurant acceptance.
	Pending

	// Preparing indicates the restaurant accepted the order and the
	// preparation countdown is running.
	Preparing

	// ReadyForPickup indicates preparation finished; the order is waiting to
	// be claimed by a courier.
	ReadyForPickup

	// EnRoute indicates a courier claimed the order and is delivering it.
	EnRoute

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was withdrawn before delivery. Terminal.
	Cancelled
)

// getStatusStrings returns the string representation of every Status value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Preparing:      "Preparing",
		ReadyForPickup: "ReadyForPickup",
		EnRoute:        "EnRoute",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// getValidStatusStrings returns only the valid Status values, to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		Preparing:      "Preparing",
		ReadyForPickup: "ReadyForPickup",
		EnRoute:        "EnRoute",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsClaimed reports whether the status implies an assigned courier.
func (s Status) IsClaimed() bool {
	return s == EnRoute || s == Delivered
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier assignment. A courier id must be present exactly in the claimed
// states (EnRoute, Delivered) and absent everywhere else. A violation found on
// a stored order is a data defect, not a user error.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && !s.IsClaimed() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()),
		)
	}

	if !courier && s.IsClaimed() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()),
		)
	}

	return nil
}

// StartPreparation transitions the status to Preparing.
//
// Valid transitions:
//   - Pending -> Preparing (restaurant accepts, countdown starts)
//
// Any other source status returns ErrInvalidTransition.
func (s Status) StartPreparation() (Status, error) {
	if s != Pending {
		return 0, invalidTransition(s, Preparing)
	}

	return Preparing, nil
}

// MarkReady transitions the status to ReadyForPickup.
//
// Valid transitions:
//   - Preparing -> ReadyForPickup (timer elapsed or explicit restaurant signal)
//   - ReadyForPickup -> ReadyForPickup (idempotent re-application, no error)
//
// Any other source status returns ErrInvalidTransition.
func (s Status) MarkReady() (Status, error) {
	if s != Preparing && s != ReadyForPickup {
		return 0, invalidTransition(s, ReadyForPickup)
	}

	return ReadyForPickup, nil
}

// Claim transitions the status to EnRoute.
//
// Valid transitions:
//   - ReadyForPickup -> EnRoute (courier wins the claim)
//
// Claimed states return ErrOrderAlreadyClaimed so the caller can tell a lost
// race from an order that is simply not claimable (ErrOrderNotClaimable).
func (s Status) Claim() (Status, error) {
	if s.IsClaimed() {
		return 0, ErrOrderAlreadyClaimed
	}
	if s != ReadyForPickup {
		return 0, ErrOrderNotClaimable
	}

	return EnRoute, nil
}

// Complete transitions the status to Delivered.
//
// Valid transitions:
//   - EnRoute -> Delivered (courier confirmed the handover)
//
// Any other source status returns ErrInvalidTransition.
func (s Status) Complete() (Status, error) {
	if s != EnRoute {
		return 0, invalidTransition(s, Delivered)
	}

	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending, Preparing, ReadyForPickup, EnRoute -> Cancelled
//   - Cancelled -> Cancelled (idempotent re-application, no error)
//
// Delivered orders cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	if s == Delivered {
		return 0, invalidTransition(s, Cancelled)
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}

	return Cancelled, nil
}

func invalidTransition(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
