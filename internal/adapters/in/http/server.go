// Package http exposes the order lifecycle over a REST API built on echo.
// Handlers translate requests into commands and queries, and domain errors
// into status codes; no business rules live here.
package http

import (
	"errors"
	"net/http"

	"cvneat/internal/core/application/usecases/commands"
	"cvneat/internal/core/application/usecases/queries"
	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrder            commands.CreateOrderCommandHandler
	startPreparation       commands.StartPreparationCommandHandler
	markReady              commands.MarkReadyCommandHandler
	claimOrder             commands.ClaimOrderCommandHandler
	completeDelivery       commands.CompleteDeliveryCommandHandler
	cancelOrder            commands.CancelOrderCommandHandler
	updateCourierPosition  commands.UpdateCourierPositionCommandHandler
	createCourier          commands.CreateCourierCommandHandler
	setCourierAvailability commands.SetCourierAvailabilityCommandHandler

	// Query handlers
	getAvailableOrders queries.GetAvailableOrdersQueryHandler
	getOrderTracking   queries.GetOrderTrackingQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrder commands.CreateOrderCommandHandler,
	startPreparation commands.StartPreparationCommandHandler,
	markReady commands.MarkReadyCommandHandler,
	claimOrder commands.ClaimOrderCommandHandler,
	completeDelivery commands.CompleteDeliveryCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
	updateCourierPosition commands.UpdateCourierPositionCommandHandler,
	createCourier commands.CreateCourierCommandHandler,
	setCourierAvailability commands.SetCourierAvailabilityCommandHandler,
	getAvailableOrders queries.GetAvailableOrdersQueryHandler,
	getOrderTracking queries.GetOrderTrackingQueryHandler,
) *Server {
	return &Server{
		createOrder:            createOrder,
		startPreparation:       startPreparation,
		markReady:              markReady,
		claimOrder:             claimOrder,
		completeDelivery:       completeDelivery,
		cancelOrder:            cancelOrder,
		updateCourierPosition:  updateCourierPosition,
		createCourier:          createCourier,
		setCourierAvailability: setCourierAvailability,
		getAvailableOrders:     getAvailableOrders,
		getOrderTracking:       getOrderTracking,
	}
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/available", s.GetAvailableOrders)
	api.GET("/orders/:orderID/tracking", s.GetOrderTracking)
	api.POST("/orders/:orderID/preparation", s.StartPreparation)
	api.POST("/orders/:orderID/ready", s.MarkReady)
	api.POST("/orders/:orderID/claim", s.ClaimOrder)
	api.POST("/orders/:orderID/complete", s.CompleteDelivery)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/position", s.UpdateCourierPosition)

	api.POST("/couriers", s.CreateCourier)
	api.PUT("/couriers/:courierID/availability", s.SetCourierAvailability)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return respondError(ctx, err)
	}
	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.ItemInput{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, restaurantID, customerID, req.DeliveryAddress, items, req.Paid)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.createOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:           orderID.String(),
		Total:        result.Total,
		DeliveryFee:  result.DeliveryFee,
		SecurityCode: result.SecurityCode,
	})
}

// StartPreparation handles POST /api/v1/orders/:orderID/preparation.
func (s *Server) StartPreparation(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var req StartPreparationRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewStartPreparationCommand(orderID, req.Minutes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.startPreparation.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkReady handles POST /api/v1/orders/:orderID/ready.
func (s *Server) MarkReady(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewMarkReadyCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.markReady.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClaimOrder handles POST /api/v1/orders/:orderID/claim.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var req ClaimOrderRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.claimOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/orders/:orderID/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var req CompleteDeliveryRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, courierID, req.ConfirmationCode)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.completeDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel (customer path).
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCourierPosition handles POST /api/v1/orders/:orderID/position.
func (s *Server) UpdateCourierPosition(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdatePositionRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateCourierPositionCommand(orderID, courierID, req.Lat, req.Lng)
	if err != nil {
		return respondError(ctx, err)
	}

	// A report outside the en-route window is ignored, not failed: stale
	// courier apps keep sending positions after handover.
	if err = s.updateCourierPosition.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, order.ErrTrackingInactive) {
			return ctx.JSON(http.StatusOK, PositionAckResponse{Active: false})
		}
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PositionAckResponse{Active: true})
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req CreateCourierRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, req.Name)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateCourierResponse{ID: courierID.String()})
}

// SetCourierAvailability handles PUT /api/v1/couriers/:courierID/availability.
func (s *Server) SetCourierAvailability(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierID")
	if err != nil {
		return respondError(ctx, err)
	}

	var req SetAvailabilityRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, *req.Available)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.setCourierAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	query := queries.NewGetAvailableOrdersQuery()

	orders, err := s.getAvailableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]AvailableOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = AvailableOrderResponse{
			ID:          o.ID.String(),
			Address:     o.Address,
			Total:       o.Total,
			DeliveryFee: o.DeliveryFee,
			ReadySince:  o.ReadySince,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderTracking handles GET /api/v1/orders/:orderID/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	tracking, err := s.getOrderTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := TrackingResponse{
		OrderID:            tracking.OrderID.String(),
		Status:             tracking.Status,
		PreparationStarted: tracking.PreparationStarted,
		RemainingSeconds:   tracking.RemainingSeconds,
		Band:               tracking.Band,
		Total:              tracking.Total,
		DeliveryFee:        tracking.DeliveryFee,
	}
	if tracking.Position != nil {
		response.Position = &TrackingPositionResponse{
			Lat:        tracking.Position.Lat,
			Lng:        tracking.Position.Lng,
			RecordedAt: tracking.Position.RecordedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// bind decodes and validates a request body, answering 400 on either failure.
func bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err := ctx.Validate(req); err != nil {
		message := "invalid request body"
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		}
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: message,
		})
	}
	return nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}
