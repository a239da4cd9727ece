package order

import "time"

// Alert band thresholds derived from remaining preparation time.
const (
	urgentThreshold     = 5 * time.Minute
	veryUrgentThreshold = 2 * time.Minute
)

// AlertBand is the urgency tier derived from an order's remaining preparation
// time. It drives UI emphasis on the courier side.
type AlertBand int

const (
	// AlertNone means preparation is comfortably in progress (more than 5 minutes left).
	AlertNone AlertBand = iota

	// AlertUrgent means 5 minutes or less remain.
	AlertUrgent

	// AlertVeryUrgent means 2 minutes or less remain.
	AlertVeryUrgent

	// AlertReady means the countdown elapsed. Once reached, the derived state
	// is frozen: further reads keep reporting ready with zero remaining time.
	AlertReady
)

// String returns the wire/UI name of the band.
func (b AlertBand) String() string {
	switch b {
	case AlertUrgent:
		return "urgent"
	case AlertVeryUrgent:
		return "very_urgent"
	case AlertReady:
		return "ready"
	default:
		return "normal"
	}
}

// PreparationState is the countdown snapshot derived for a single read.
// It is never stored: every read recomputes it from the preparation start
// timestamp and duration, so polling once or every second yields consistent
// results and server restarts cannot introduce drift.
type PreparationState struct {
	// Started reports whether the restaurant has begun preparation.
	Started bool

	// Remaining is the time left until the order is due, floored at zero.
	Remaining time.Duration

	// Band is the urgency tier for the remaining time.
	Band AlertBand
}

// PreparationState derives the countdown state of the order at the given instant.
//
// Before preparation starts, the state is zero-valued with Started=false.
// After the deadline passes, or once the order has moved past Preparing,
// the state is frozen at AlertReady with zero remaining time; it never re-arms,
// so a read at T+25min of a 20-minute preparation still reports ready rather
// than a negative remainder.
func (o *Order) PreparationState(now time.Time) PreparationState {
	return DerivePreparationState(o.status, o.preparationStartedAt, o.preparationMinutes, now)
}

// DerivePreparationState computes the countdown state from raw stored fields.
// The read side uses it directly on queried rows; the aggregate method above
// delegates here, so there is exactly one derivation.
func DerivePreparationState(
	status Status,
	startedAt *time.Time,
	minutes int,
	now time.Time,
) PreparationState {
	if startedAt == nil {
		return PreparationState{}
	}

	// Orders that already left the preparation phase are frozen at ready.
	if status != Preparing {
		return PreparationState{Started: true, Band: AlertReady}
	}

	deadline := startedAt.Add(time.Duration(minutes) * time.Minute)
	remaining := deadline.Sub(now)

	switch {
	case remaining <= 0:
		return PreparationState{Started: true, Band: AlertReady}
	case remaining <= veryUrgentThreshold:
		return PreparationState{Started: true, Remaining: remaining, Band: AlertVeryUrgent}
	case remaining <= urgentThreshold:
		return PreparationState{Started: true, Remaining: remaining, Band: AlertUrgent}
	default:
		return PreparationState{Started: true, Remaining: remaining, Band: AlertNone}
	}
}
