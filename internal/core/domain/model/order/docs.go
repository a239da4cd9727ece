// Package order provides domain entities and business logic for order lifecycle
// management in the delivery system. It implements the Order aggregate root with
// the status state machine, the preparation countdown and the claim rules.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, contents and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - ItemLine: An immutable value object for a single ordered dish
//   - PreparationState: The countdown snapshot derived per read, never stored
//
// Key business rules:
//   - Order status follows a defined workflow:
//     Pending -> Preparing -> ReadyForPickup -> EnRoute -> Delivered,
//     with Cancelled reachable from every non-Delivered status
//   - A courier id is present exactly in the claimed states (EnRoute, Delivered)
//   - Delivery completion requires the customer's six-digit security code
//   - Courier positions are recorded only while the order is en route
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
