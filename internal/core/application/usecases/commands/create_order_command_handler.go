package commands

import (
	"context"

	"cvneat/internal/core/domain/model/order"
	"cvneat/internal/core/domain/services"
	"cvneat/internal/pkg/clock"
)

// CreateOrderCommandHandler handles the business logic for placing an order.
// It runs the delivery-zone eligibility check, prices the delivery, and
// persists the new Pending order.
//
// ErrZoneNotServed and ErrDistanceExceeded from the zone calculator pass
// through unchanged: an undeliverable address is an expected checkout outcome
// the caller maps to a client response, and no order is created for it.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	zones      *services.DeliveryZoneCalculator
	clock      clock.Clock
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	zones *services.DeliveryZoneCalculator,
	clk clock.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		zones:      zones,
		clock:      clk,
	}
}

// CreateOrderResult carries the checkout outcome back to the caller. The
// security code is exposed here once; later reads of the order never reveal it.
type CreateOrderResult struct {
	Total        float64
	DeliveryFee  float64
	SecurityCode string
}

// Handle processes the order placement command.
// The delivery fee is fixed here, at checkout time, and never recomputed.
func (h *CreateOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderCommand,
) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	quote, err := h.zones.Quote(cmd.Address())
	if err != nil {
		return CreateOrderResult{}, err
	}

	items := make([]order.ItemLine, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		line, err := order.NewItemLine(input.Name, input.UnitPrice, input.Quantity)
		if err != nil {
			return CreateOrderResult{}, err
		}
		items = append(items, line)
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.RestaurantID(), cmd.CustomerID(),
		cmd.Address(), quote.Center, items,
		quote.Fee, cmd.IsPaid(), h.clock.Now(),
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{
		Total:        newOrder.Total(),
		DeliveryFee:  newOrder.DeliveryFee(),
		SecurityCode: newOrder.SecurityCode(),
	}, nil
}
