package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"cvneat/internal/core/domain/model/courier"
	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/domain/model/order"
	"cvneat/internal/core/domain/services"
	"cvneat/internal/pkg/clock"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func testClock() clock.Clock {
	return clock.NewFixed(testNow)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testZoneCalculator(t *testing.T) *services.DeliveryZoneCalculator {
	t.Helper()

	restaurant, err := kernel.NewGeoPoint(43.9342, 3.7098)
	require.NoError(t, err)
	laroque, err := kernel.NewGeoPoint(43.9188, 3.7146)
	require.NoError(t, err)

	calc, err := services.NewDeliveryZoneCalculator(
		restaurant,
		[]services.Zone{
			{Name: "ganges", Center: restaurant},
			{Name: "laroque", Center: laroque},
		},
		services.DefaultFeePolicy(),
	)
	require.NoError(t, err)
	return calc
}

func buildPendingOrder(t *testing.T) *order.Order {
	t.Helper()

	point, err := kernel.NewGeoPoint(43.9188, 3.7146)
	require.NoError(t, err)
	line, err := order.NewItemLine("Pizza Reine", 12.50, 1)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"12 rue des Barrys, Laroque", point,
		[]order.ItemLine{line},
		3.20, true, testNow.Add(-time.Hour),
	)
	require.NoError(t, err)
	return o
}

func buildReadyOrder(t *testing.T) *order.Order {
	t.Helper()

	o := buildPendingOrder(t)
	require.NoError(t, o.StartPreparation(20, testNow.Add(-50*time.Minute)))
	require.NoError(t, o.MarkReady(testNow.Add(-30*time.Minute)))
	return o
}

func buildEnRouteOrder(t *testing.T, courierID kernel.UUID) *order.Order {
	t.Helper()

	o := buildReadyOrder(t)
	require.NoError(t, o.Claim(courierID, testNow.Add(-10*time.Minute)))
	return o
}

func buildAvailableCourier(t *testing.T, id kernel.UUID) *courier.Courier {
	t.Helper()

	c, err := courier.NewCourier(id, "Marie")
	require.NoError(t, err)
	c.SetAvailability(true)
	return c
}
