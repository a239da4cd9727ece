package kernel

import "math"

// RoundToCents rounds a monetary amount to two decimal places using standard
// half-away-from-zero rounding (not banker's rounding). Intermediate
// computations keep full floating precision; only the final amount is rounded.
func RoundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
