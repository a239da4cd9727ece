// Package courier provides domain entities and business logic for courier
// management in the delivery system. It implements the Courier aggregate root
// with availability tracking and running delivery statistics.
//
// The package includes:
//   - Courier: The aggregate root managing identity, availability and statistics
//
// Key business rules:
//   - Couriers must have a valid unique identifier and a non-empty name
//   - Only available couriers participate in the order claim flow
//   - Completed deliveries grow the courier's counters monotonically;
//     earnings are rounded to cents after every addition
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package courier
