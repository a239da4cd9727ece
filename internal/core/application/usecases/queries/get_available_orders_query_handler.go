package queries

import (
	"context"
	"time"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler reads the claimable-orders feed from the
// database. The feed is advisory: between this read and a claim attempt any
// order may be taken, and only the claim's conditional update decides.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for the claimable-orders feed.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the query. Oldest-waiting orders come first.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delivery_address,
			total,
			delivery_fee,
			updated_at
		FROM orders
		WHERE status = ? AND courier_id IS NULL
		ORDER BY updated_at
	`, order.ReadyForPickup).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableOrdersQueryResponse
		var id uuid.UUID
		var readySince time.Time

		err = rows.Scan(
			&id,
			&resp.Address,
			&resp.Total,
			&resp.DeliveryFee,
			&readySince,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.ReadySince = readySince

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
