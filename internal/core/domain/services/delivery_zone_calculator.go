package services

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/pkg/errs"
)

// Expected outcomes of a delivery eligibility check.
var (
	// ErrZoneNotServed is returned when the delivery address matches none of
	// the configured delivery zones.
	ErrZoneNotServed = errors.New("address is outside the served delivery zones")

	// ErrDistanceExceeded is returned when the matched zone lies beyond the
	// maximum delivery radius from the restaurant.
	ErrDistanceExceeded = errors.New("delivery distance exceeds the maximum radius")
)

// Zone is one known locality: its matchable name and representative center
// coordinates used for the distance and fee calculation. TooFar marks
// localities kept in the table only so their addresses get a distance
// rejection instead of an unknown-locality one.
type Zone struct {
	Name   string
	Center kernel.GeoPoint
	TooFar bool
}

// FeePolicy holds the delivery pricing and radius parameters.
// All monetary values are in euros, distances in kilometers.
type FeePolicy struct {
	BaseFee     float64
	FeePerKM    float64
	MaxFee      float64
	MaxRadiusKM float64
}

// DefaultFeePolicy returns the standard pricing: 2.50 base, 0.80 per
// kilometer, capped at 10.00, within a 10 km radius (inclusive).
func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		BaseFee:     2.50,
		FeePerKM:    0.80,
		MaxFee:      10.00,
		MaxRadiusKM: 10.0,
	}
}

// Quote is the result of a successful eligibility check: the matched zone and
// its center coordinates, the distance from the restaurant to that center, and
// the delivery fee. The center doubles as the order's delivery point, since
// addresses are not geocoded beyond the zone level.
type Quote struct {
	Zone       string
	Center     kernel.GeoPoint
	DistanceKM float64
	Fee        float64
}

// DeliveryZoneCalculator is a domain service answering one question: can we
// deliver to this address, and at what fee.
//
// The check runs in two stages:
//  1. Zone match. The address is normalized and searched for any configured
//     zone name as a substring. No match means the locality is not served
//     at all (ErrZoneNotServed).
//  2. Distance gate. The great-circle distance from the restaurant to the
//     matched zone's center must not exceed the maximum radius; the boundary
//     itself is deliverable (ErrDistanceExceeded beyond it). Zones flagged
//     TooFar are rejected outright, whatever their computed distance.
//
// The fee is base + per-kilometer rate times distance, capped at the maximum,
// and rounded to cents only at the very end, so intermediate precision never
// leaks into the result.
type DeliveryZoneCalculator struct {
	restaurant kernel.GeoPoint
	zones      []Zone
	policy     FeePolicy
}

// NewDeliveryZoneCalculator creates a calculator for the given restaurant
// location, zone table and pricing policy.
func NewDeliveryZoneCalculator(
	restaurant kernel.GeoPoint,
	zones []Zone,
	policy FeePolicy,
) (*DeliveryZoneCalculator, error) {
	if err := restaurant.Validate(); err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return nil, errs.NewValueIsRequiredError("delivery zones")
	}
	for _, zone := range zones {
		if zone.Name == "" {
			return nil, errs.NewValueIsRequiredError("zone name")
		}
		if err := zone.Center.Validate(); err != nil {
			return nil, err
		}
	}

	return &DeliveryZoneCalculator{
		restaurant: restaurant,
		zones:      zones,
		policy:     policy,
	}, nil
}

// Quote checks deliverability of the address and computes the delivery fee.
//
// Returns ErrZoneNotServed when no zone name occurs in the address, and
// ErrDistanceExceeded when the matched zone is flagged too far or its center
// is farther than the maximum radius. Both are expected business outcomes,
// not failures.
func (c *DeliveryZoneCalculator) Quote(address string) (Quote, error) {
	zone, ok := c.matchZone(address)
	if !ok {
		return Quote{}, ErrZoneNotServed
	}
	if zone.TooFar {
		return Quote{}, ErrDistanceExceeded
	}

	distance := c.restaurant.DistanceKM(zone.Center)
	if distance > c.policy.MaxRadiusKM {
		return Quote{}, ErrDistanceExceeded
	}

	fee := c.policy.BaseFee + c.policy.FeePerKM*distance
	if fee > c.policy.MaxFee {
		fee = c.policy.MaxFee
	}

	return Quote{
		Zone:       zone.Name,
		Center:     zone.Center,
		DistanceKM: distance,
		Fee:        kernel.RoundToCents(fee),
	}, nil
}

// matchZone finds the first configured zone whose name occurs in the address.
// Matching is case-insensitive, folds diacritics and treats hyphens and spaces
// as equivalent, so "Sumène" matches the zone "sumene" and "Saint Bauzille"
// matches "saint-bauzille".
func (c *DeliveryZoneCalculator) matchZone(address string) (Zone, bool) {
	normalized := normalizeForMatch(address)

	for _, zone := range c.zones {
		if strings.Contains(normalized, normalizeForMatch(zone.Name)) {
			return zone, true
		}
	}

	return Zone{}, false
}

func normalizeForMatch(s string) string {
	// NFD splits letters from their combining marks so the marks can be
	// stripped; transformers are stateful, hence one chain per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	return strings.ReplaceAll(strings.ToLower(folded), "-", " ")
}
