// Package services contains domain services: business logic that spans
// aggregates or needs configuration that no single aggregate owns.
//
// DeliveryZoneCalculator decides whether an address is deliverable from the
// restaurant and what the delivery fee is. It combines the configured zone
// table, the great-circle distance to the zone center and the pricing policy
// into a single eligibility check run at checkout.
package services
