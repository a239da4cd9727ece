// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"errors"

	"cvneat/internal/core/ports"
)

// Cross-cutting command errors.
var (
	// ErrCourierNotAvailable is returned when an off-shift courier tries to
	// claim an order.
	ErrCourierNotAvailable = errors.New("courier is not available")

	// ErrCourierMismatch is returned when a courier acts on an order that is
	// assigned to someone else (or to no one).
	ErrCourierMismatch = errors.New("order is not assigned to this courier")
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// ClaimLogRepoFactory provides access to the claim audit log within a transaction.
	ClaimLogRepoFactory interface {
		ClaimLogRepository() ports.ClaimLogRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	// Used when commands only modify courier aggregates.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// ClaimUoW manages transactions for the claim flow: the conditional order
	// write, the courier availability check and the audit log entry all land
	// in one transaction.
	ClaimUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		ClaimLogRepoFactory
	}

	// ClaimUoWFactory creates new claim unit of work instances.
	ClaimUoWFactory interface {
		Create() ClaimUoW
	}

	// DeliveryUoW manages transactions spanning order and courier aggregates.
	// Used when completing a delivery updates both the order status and the
	// courier's statistics atomically.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}
)
