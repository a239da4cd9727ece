// Package claimlogrepo persists the append-only claim audit log. Every claim
// attempt, winning or losing, becomes one immutable row; the log is the
// record of contention for claimed orders and is never updated or pruned.
package claimlogrepo

import (
	"time"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/ports"

	"github.com/google/uuid"
)

// ClaimAttemptDTO represents one claim attempt row. The surrogate key
// preserves insertion order within an order's history.
type ClaimAttemptDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CourierID uuid.UUID `gorm:"type:uuid;not null;index"`
	Won       bool      `gorm:"not null"`
	At        time.Time `gorm:"not null"`
}

// TableName specifies the database table name for claim attempt rows.
func (ClaimAttemptDTO) TableName() string {
	return "claim_attempts"
}

func fromPort(attempt ports.ClaimAttempt) ClaimAttemptDTO {
	return ClaimAttemptDTO{
		OrderID:   attempt.OrderID.Bytes(),
		CourierID: attempt.CourierID.Bytes(),
		Won:       attempt.Won,
		At:        attempt.At,
	}
}

func toPort(dto ClaimAttemptDTO) (ports.ClaimAttempt, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.ClaimAttempt{}, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return ports.ClaimAttempt{}, err
	}

	return ports.ClaimAttempt{
		OrderID:   orderID,
		CourierID: courierID,
		Won:       dto.Won,
		At:        dto.At,
	}, nil
}
