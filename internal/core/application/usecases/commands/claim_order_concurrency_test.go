package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"cvneat/internal/core/application/usecases/commands"
	"cvneat/internal/core/domain/model/courier"
	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/domain/model/order"
	"cvneat/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// claimStore is a minimal in-memory stand-in for the database, with the same
// atomicity contract: TryClaim is a single guarded compare-and-set under one
// mutex, exactly like the conditional UPDATE the real repository issues.
type claimStore struct {
	mu sync.Mutex

	orderID   kernel.UUID
	status    order.Status
	claimedBy *kernel.UUID
	attempts  []ports.ClaimAttempt
}

func newClaimStore(orderID kernel.UUID) *claimStore {
	return &claimStore{
		orderID: orderID,
		status:  order.ReadyForPickup,
	}
}

func (s *claimStore) Add(context.Context, *order.Order) error    { return nil }
func (s *claimStore) Update(context.Context, *order.Order) error { return nil }

func (s *claimStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	point, _ := kernel.NewGeoPoint(43.9188, 3.7146)
	line, _ := order.NewItemLine("Pizza Reine", 12.50, 1)
	startedAt := testNow.Add(-50 * time.Minute)

	return order.RestoreOrder(
		id, kernel.NewUUID(), kernel.NewUUID(),
		s.claimedBy,
		"Laroque", point, []order.ItemLine{line},
		15.70, 3.20, true, "123456",
		s.status,
		20, &startedAt, nil,
		testNow.Add(-time.Hour), testNow,
	)
}

func (s *claimStore) GetAllReadyUnclaimed(context.Context) ([]*order.Order, error) {
	return nil, nil
}

func (s *claimStore) TryClaim(_ context.Context, orderID, courierID kernel.UUID, _ time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !orderID.IsEqual(s.orderID) || s.status != order.ReadyForPickup || s.claimedBy != nil {
		return false, nil
	}

	s.claimedBy = &courierID
	s.status = order.EnRoute
	return true, nil
}

func (s *claimStore) FindPreparationElapsed(context.Context, time.Time) ([]kernel.UUID, error) {
	return nil, nil
}

func (s *claimStore) FindExpiredUnclaimed(context.Context, time.Time) ([]kernel.UUID, error) {
	return nil, nil
}

func (s *claimStore) CancelIfUnclaimed(context.Context, kernel.UUID, time.Time) (bool, error) {
	return false, nil
}

func (s *claimStore) addAttempt(attempt ports.ClaimAttempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempt)
}

// claimLogAdapter exposes the store's attempt list through the repository port.
type claimLogAdapter struct{ store *claimStore }

func (a claimLogAdapter) Add(_ context.Context, attempt ports.ClaimAttempt) error {
	a.store.addAttempt(attempt)
	return nil
}

func (a claimLogAdapter) GetByOrder(context.Context, kernel.UUID) ([]ports.ClaimAttempt, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return append([]ports.ClaimAttempt(nil), a.store.attempts...), nil
}

// courierDirectory returns an available courier for any id.
type courierDirectory struct{}

func (courierDirectory) Add(context.Context, *courier.Courier) error    { return nil }
func (courierDirectory) Update(context.Context, *courier.Courier) error { return nil }

func (courierDirectory) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	c, err := courier.NewCourier(id, "racer")
	if err != nil {
		return nil, err
	}
	c.SetAvailability(true)
	return c, nil
}

func (courierDirectory) GetAllAvailable(context.Context) ([]*courier.Courier, error) {
	return nil, nil
}

type fakeClaimUoW struct{ store *claimStore }

func (u fakeClaimUoW) Begin(context.Context) error                 { return nil }
func (u fakeClaimUoW) Commit(context.Context) error                { return nil }
func (u fakeClaimUoW) Rollback(context.Context) error              { return nil }
func (u fakeClaimUoW) OrderRepository() ports.OrderRepository      { return u.store }
func (u fakeClaimUoW) CourierRepository() ports.CourierRepository  { return courierDirectory{} }
func (u fakeClaimUoW) ClaimLogRepository() ports.ClaimLogRepository {
	return claimLogAdapter{store: u.store}
}

type fakeClaimUoWFactory struct{ store *claimStore }

func (f fakeClaimUoWFactory) Create() commands.ClaimUoW {
	return fakeClaimUoW{store: f.store}
}

type countingPublisher struct {
	mu     sync.Mutex
	events []ports.OrderEvent
}

func (p *countingPublisher) Publish(_ context.Context, event ports.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *countingPublisher) Close() {}

func TestClaimOrderCommandHandler_ConcurrentClaims_AtMostOneWinner(t *testing.T) {
	const racers = 25

	ctx := t.Context()
	orderID := kernel.NewUUID()
	store := newClaimStore(orderID)
	publisher := &countingPublisher{}

	h := commands.NewClaimOrderCommandHandler(
		fakeClaimUoWFactory{store: store}, publisher, testClock(), testLogger())

	results := make(chan error, racers)
	var wg sync.WaitGroup
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			cmd, err := commands.NewClaimOrderCommand(orderID, kernel.NewUUID())
			if err != nil {
				results <- err
				return
			}
			results <- h.Handle(ctx, cmd)
		}()
	}
	wg.Wait()
	close(results)

	var wins, alreadyClaimed int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, order.ErrOrderAlreadyClaimed)
			alreadyClaimed++
		}
	}

	assert.Equal(t, 1, wins, "exactly one racer must win the claim")
	assert.Equal(t, racers-1, alreadyClaimed)

	// The store holds the winner; the audit log saw every attempt.
	require.NotNil(t, store.claimedBy)
	assert.Equal(t, order.EnRoute, store.status)
	assert.Len(t, store.attempts, racers)

	var wonAttempts int
	for _, attempt := range store.attempts {
		if attempt.Won {
			wonAttempts++
			assert.True(t, attempt.CourierID.IsEqual(*store.claimedBy))
		}
	}
	assert.Equal(t, 1, wonAttempts)

	// One claimed event, for the winner only.
	require.Len(t, publisher.events, 1)
	assert.Equal(t, ports.EventOrderClaimed, publisher.events[0].Type)
	assert.Equal(t, store.claimedBy.String(), publisher.events[0].CourierID)
}
