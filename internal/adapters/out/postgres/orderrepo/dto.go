// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with indexing for
// the two hot lookups: the claimable-orders feed and the expiration sweep,
// both of which filter on status plus unassigned courier.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`

	DeliveryAddress string  `gorm:"type:varchar(512);not null"`
	DeliveryLat     float64 `gorm:"not null"`
	DeliveryLng     float64 `gorm:"not null"`

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Total        float64 `gorm:"not null"`
	DeliveryFee  float64 `gorm:"not null"`
	Paid         bool    `gorm:"not null"`
	SecurityCode string  `gorm:"type:varchar(6);not null"`

	Status int `gorm:"not null;index"`

	PreparationMinutes   int `gorm:"not null"`
	PreparationStartedAt *time.Time

	CourierPositionLat *float64
	CourierPositionLng *float64
	CourierPositionAt  *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order item line. Item lines are written once with the
// order and never updated afterwards.
type ItemDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	UnitPrice float64   `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
}

// TableName specifies the database table name for order item lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional courier assignment and the last
// reported courier position.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, line := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:   orderID,
			Name:      line.Name(),
			UnitPrice: line.UnitPrice(),
			Quantity:  line.Quantity(),
		})
	}

	dto := OrderDTO{
		ID:                   orderID,
		RestaurantID:         aggregate.RestaurantID().Bytes(),
		CustomerID:           aggregate.CustomerID().Bytes(),
		CourierID:            courierID,
		DeliveryAddress:      aggregate.DeliveryAddress(),
		DeliveryLat:          aggregate.DeliveryPoint().Lat(),
		DeliveryLng:          aggregate.DeliveryPoint().Lng(),
		Items:                items,
		Total:                aggregate.Total(),
		DeliveryFee:          aggregate.DeliveryFee(),
		Paid:                 aggregate.IsPaid(),
		SecurityCode:         aggregate.SecurityCode(),
		Status:               int(aggregate.Status()),
		PreparationMinutes:   aggregate.PreparationMinutes(),
		PreparationStartedAt: aggregate.PreparationStartedAt(),
		CreatedAt:            aggregate.CreatedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
	}

	if pos := aggregate.CourierPosition(); pos != nil {
		lat := pos.Point.Lat()
		lng := pos.Point.Lng()
		at := pos.RecordedAt
		dto.CourierPositionLat = &lat
		dto.CourierPositionLng = &lng
		dto.CourierPositionAt = &at
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including item lines, status, courier
// assignment and position snapshot using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	deliveryPoint, err := kernel.NewGeoPoint(dto.DeliveryLat, dto.DeliveryLng)
	if err != nil {
		return nil, err
	}

	items := make([]order.ItemLine, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		line, lineErr := order.NewItemLine(itemDto.Name, itemDto.UnitPrice, itemDto.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		items = append(items, line)
	}

	var position *order.PositionSnapshot
	if dto.CourierPositionLat != nil && dto.CourierPositionLng != nil && dto.CourierPositionAt != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.CourierPositionLat, *dto.CourierPositionLng)
		if pointErr != nil {
			return nil, pointErr
		}
		position = &order.PositionSnapshot{Point: point, RecordedAt: *dto.CourierPositionAt}
	}

	return order.RestoreOrder(
		id, restaurantID, customerID,
		courierID,
		dto.DeliveryAddress,
		deliveryPoint,
		items,
		dto.Total, dto.DeliveryFee,
		dto.Paid,
		dto.SecurityCode,
		order.Status(dto.Status),
		dto.PreparationMinutes,
		dto.PreparationStartedAt,
		position,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
