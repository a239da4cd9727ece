package order_test

import (
	"testing"
	"time"

	"cvneat/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertBand_String(t *testing.T) {
	assert.Equal(t, "normal", order.AlertNone.String())
	assert.Equal(t, "urgent", order.AlertUrgent.String())
	assert.Equal(t, "very_urgent", order.AlertVeryUrgent.String())
	assert.Equal(t, "ready", order.AlertReady.String())
}

func TestOrder_PreparationState(t *testing.T) {
	t.Run("should be zero before preparation starts", func(t *testing.T) {
		o := newTestOrder(t)

		state := o.PreparationState(testNow)

		assert.False(t, state.Started)
		assert.Zero(t, state.Remaining)
		assert.Equal(t, order.AlertNone, state.Band)
	})

	t.Run("should report normal band above five minutes remaining", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.StartPreparation(20, testNow))

		state := o.PreparationState(testNow.Add(10 * time.Minute))

		assert.True(t, state.Started)
		assert.Equal(t, 10*time.Minute, state.Remaining)
		assert.Equal(t, order.AlertNone, state.Band)
	})

	t.Run("should report urgent at exactly five minutes", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.StartPreparation(20, testNow))

		state := o.PreparationState(testNow.Add(15 * time.Minute))

		assert.Equal(t, 5*time.Minute, state.Remaining)
		assert.Equal(t, order.AlertUrgent, state.Band)
	})

	t.Run("should report very urgent at exactly two minutes", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.StartPreparation(20, testNow))

		state := o.PreparationState(testNow.Add(18 * time.Minute))

		assert.Equal(t, 2*time.Minute, state.Remaining)
		assert.Equal(t, order.AlertVeryUrgent, state.Band)
	})

	t.Run("should report ready at the deadline", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.StartPreparation(20, testNow))

		state := o.PreparationState(testNow.Add(20 * time.Minute))

		assert.True(t, state.Started)
		assert.Zero(t, state.Remaining)
		assert.Equal(t, order.AlertReady, state.Band)
	})

	t.Run("should stay frozen at ready long after the deadline", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.StartPreparation(20, testNow))

		state := o.PreparationState(testNow.Add(25 * time.Minute))

		assert.True(t, state.Started)
		assert.Zero(t, state.Remaining)
		assert.Equal(t, order.AlertReady, state.Band)
	})

	t.Run("should be consistent across repeated reads", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.StartPreparation(20, testNow))
		at := testNow.Add(17 * time.Minute)

		first := o.PreparationState(at)
		second := o.PreparationState(at)

		assert.Equal(t, first, second)
	})

	t.Run("should stay ready once the order left preparation", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.StartPreparation(20, testNow))
		require.NoError(t, o.MarkReady(testNow.Add(12*time.Minute)))

		// Early explicit ready: countdown had 8 minutes left.
		state := o.PreparationState(testNow.Add(13 * time.Minute))

		assert.True(t, state.Started)
		assert.Zero(t, state.Remaining)
		assert.Equal(t, order.AlertReady, state.Band)
	})
}
