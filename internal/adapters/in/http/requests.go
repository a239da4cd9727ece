package http

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's Validator hook.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the validator wired into the echo instance.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks struct tags and reports violations as a 400 response.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// OrderItemRequest is one dish line in an order placement request.
type OrderItemRequest struct {
	Name      string  `json:"name" validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	RestaurantID    string             `json:"restaurant_id" validate:"required,uuid"`
	CustomerID      string             `json:"customer_id" validate:"required,uuid"`
	DeliveryAddress string             `json:"delivery_address" validate:"required"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Paid            bool               `json:"paid"`
}

// StartPreparationRequest is the body of POST /orders/:orderID/preparation.
type StartPreparationRequest struct {
	Minutes int `json:"minutes" validate:"required,gte=1,lte=240"`
}

// ClaimOrderRequest is the body of POST /orders/:orderID/claim.
type ClaimOrderRequest struct {
	CourierID string `json:"courier_id" validate:"required,uuid"`
}

// CompleteDeliveryRequest is the body of POST /orders/:orderID/complete.
type CompleteDeliveryRequest struct {
	CourierID        string `json:"courier_id" validate:"required,uuid"`
	ConfirmationCode string `json:"confirmation_code" validate:"required,len=6,numeric"`
}

// UpdatePositionRequest is the body of POST /orders/:orderID/position.
type UpdatePositionRequest struct {
	CourierID string  `json:"courier_id" validate:"required,uuid"`
	Lat       float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng       float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// CreateCourierRequest is the body of POST /couriers.
type CreateCourierRequest struct {
	Name string `json:"name" validate:"required"`
}

// SetAvailabilityRequest is the body of PUT /couriers/:courierID/availability.
// Available is a pointer so that an absent field fails validation instead of
// silently reading as false.
type SetAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// ErrorResponse is the uniform error body for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderResponse is returned on successful order placement.
type CreateOrderResponse struct {
	ID           string  `json:"id"`
	Total        float64 `json:"total"`
	DeliveryFee  float64 `json:"delivery_fee"`
	SecurityCode string  `json:"security_code"`
}

// PositionAckResponse answers a position report. Active is false when the
// order is not en route; the report was ignored, which is not a failure.
type PositionAckResponse struct {
	Active bool `json:"active"`
}

// CreateCourierResponse is returned on successful courier registration.
type CreateCourierResponse struct {
	ID string `json:"id"`
}

// AvailableOrderResponse is one entry of the claimable-orders feed.
type AvailableOrderResponse struct {
	ID          string    `json:"id"`
	Address     string    `json:"address"`
	Total       float64   `json:"total"`
	DeliveryFee float64   `json:"delivery_fee"`
	ReadySince  time.Time `json:"ready_since"`
}

// TrackingPositionResponse is the last reported courier location.
type TrackingPositionResponse struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TrackingResponse is the customer-facing tracking view of one order.
type TrackingResponse struct {
	OrderID            string                    `json:"order_id"`
	Status             string                    `json:"status"`
	PreparationStarted bool                      `json:"preparation_started"`
	RemainingSeconds   int64                     `json:"remaining_seconds"`
	Band               string                    `json:"band"`
	Position           *TrackingPositionResponse `json:"position,omitempty"`
	Total              float64                   `json:"total"`
	DeliveryFee        float64                   `json:"delivery_fee"`
}
