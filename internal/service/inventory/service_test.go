package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/evently/internal/broker"
	"github.com/kirinyoku/evently/internal/domain"
	redisrepo "github.com/kirinyoku/evently/internal/repository/redis"
	"github.com/kirinyoku/evently/internal/service/inventory"
	"github.com/kirinyoku/evently/internal/testutil"
)

type recordedChanges struct {
	mu     sync.Mutex
	events []int64
	places []int64
}

func (r *recordedChanges) EventChanged(_ context.Context, id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, id)
}

func (r *recordedChanges) PlaceChanged(_ context.Context, id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.places = append(r.places, id)
}

type recordedPublisher struct {
	mu     sync.Mutex
	queues []string
}

func (p *recordedPublisher) Publish(_ context.Context, queue string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queues = append(p.queues, queue)
	return nil
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (redisrepo.Decision, error) {
	return redisrepo.Decision{Allowed: false, Count: 11, RetryAfter: 30 * time.Second}, nil
}

func TestPurchaseTickets(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	buyer := testutil.CreateUser(t, store, domain.RoleUser)
	eventID, ttID := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalApproved, 2500, 5)

	changes := &recordedChanges{}
	pub := &recordedPublisher{}
	svc := inventory.New(store, changes, nil, pub, nil)

	p, err := svc.PurchaseTickets(ctx, buyer.ID, ttID, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationPending, p.Reservation.Status)
	assert.Equal(t, int64(5000), p.Reservation.TotalCents)
	require.Len(t, p.Tickets, 2)
	assert.NotEqual(t, p.Tickets[0].Code, p.Tickets[1].Code)

	e, err := store.Events().GetByID(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 3, e.TicketTypes[0].Quantity)

	assert.Equal(t, []int64{eventID}, changes.events)
	assert.Equal(t, []string{broker.QueueTicketsPurchased}, pub.queues)
}

func TestPurchaseTickets_Rejections(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	buyer := testutil.CreateUser(t, store, domain.RoleUser)
	_, pendingTT := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalPending, 100, 5)
	_, ttID := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalApproved, 100, 1)

	svc := inventory.New(store, &recordedChanges{}, nil, nil, nil)

	_, err := svc.PurchaseTickets(ctx, buyer.ID, ttID, 0)
	assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)

	_, err = svc.PurchaseTickets(ctx, buyer.ID, pendingTT, 1)
	assert.ErrorIs(t, err, inventory.ErrEventNotApproved)

	_, err = svc.PurchaseTickets(ctx, buyer.ID, 999999, 1)
	assert.ErrorIs(t, err, inventory.ErrTicketTypeNotFound)

	_, err = svc.PurchaseTickets(ctx, buyer.ID, ttID, 2)
	assert.ErrorIs(t, err, inventory.ErrInsufficientQuantity)

	limited := inventory.New(store, &recordedChanges{}, denyAll{}, nil, nil)
	_, err = limited.PurchaseTickets(ctx, buyer.ID, ttID, 1)
	var rl inventory.RateLimitedError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 30*time.Second, rl.RetryAfter)
}

func TestPurchaseTickets_ConcurrentLastUnits(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	eventID, ttID := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalApproved, 100, 5)
	buyers := []*domain.User{
		testutil.CreateUser(t, store, domain.RoleUser),
		testutil.CreateUser(t, store, domain.RoleUser),
	}

	svc := inventory.New(store, &recordedChanges{}, nil, nil, nil)

	errs := make([]error, len(buyers))
	var wg sync.WaitGroup
	for i, b := range buyers {
		wg.Add(1)
		go func(i int, userID int64) {
			defer wg.Done()
			_, errs[i] = svc.PurchaseTickets(ctx, userID, ttID, 3)
		}(i, b.ID)
	}
	wg.Wait()

	var ok, soldOut int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, inventory.ErrInsufficientQuantity):
			soldOut++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, soldOut)

	e, err := store.Events().GetByID(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 2, e.TicketTypes[0].Quantity)
}

func TestCancelReservation_Restocks(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	buyer := testutil.CreateUser(t, store, domain.RoleUser)
	other := testutil.CreateUser(t, store, domain.RoleUser)
	eventID, ttID := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalApproved, 100, 4)

	svc := inventory.New(store, &recordedChanges{}, nil, nil, nil)

	p, err := svc.PurchaseTickets(ctx, buyer.ID, ttID, 3)
	require.NoError(t, err)

	err = svc.CancelReservation(ctx, other.ID, p.Reservation.ID)
	assert.ErrorIs(t, err, inventory.ErrForbidden)

	require.NoError(t, svc.CancelReservation(ctx, buyer.ID, p.Reservation.ID))

	e, err := store.Events().GetByID(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 4, e.TicketTypes[0].Quantity)

	err = svc.CancelReservation(ctx, buyer.ID, p.Reservation.ID)
	assert.ErrorIs(t, err, inventory.ErrReservationNotPending)
}

func TestReservePlace(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	alice := testutil.CreateUser(t, store, domain.RoleUser)
	bob := testutil.CreateUser(t, store, domain.RoleUser)
	placeID := testutil.CreatePlace(t, store, owner.ID, domain.ApprovalApproved, 30000)
	pendingID := testutil.CreatePlace(t, store, owner.ID, domain.ApprovalPending, 30000)

	changes := &recordedChanges{}
	svc := inventory.New(store, changes, nil, nil, nil)

	day := domain.Day(time.Now()).AddDate(0, 0, 10)

	r, err := svc.ReservePlace(ctx, alice.ID, placeID, day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationPlace, r.Kind)
	assert.Equal(t, int64(30000), r.TotalCents)
	require.NotNil(t, r.ReservedDate)
	assert.True(t, day.Equal(domain.Day(*r.ReservedDate)))
	assert.Equal(t, []int64{placeID}, changes.places)

	_, err = svc.ReservePlace(ctx, bob.ID, placeID, day)
	assert.ErrorIs(t, err, inventory.ErrDateReserved)

	_, err = svc.ReservePlace(ctx, bob.ID, placeID, domain.Day(time.Now()).AddDate(0, 0, -1))
	assert.ErrorIs(t, err, inventory.ErrDateInPast)

	_, err = svc.ReservePlace(ctx, bob.ID, pendingID, day)
	assert.ErrorIs(t, err, inventory.ErrPlaceNotApproved)

	blocked := day.AddDate(0, 0, 1)
	_, err = store.Places().BlockDates(ctx, placeID, []time.Time{blocked}, "maintenance")
	require.NoError(t, err)

	_, err = svc.ReservePlace(ctx, bob.ID, placeID, blocked)
	assert.ErrorIs(t, err, inventory.ErrDateBlocked)

	require.NoError(t, svc.CancelReservation(ctx, alice.ID, r.ID))

	_, err = svc.ReservePlace(ctx, bob.ID, placeID, day)
	assert.NoError(t, err, "a cancelled booking frees its date")
}

func TestReservePlace_ConcurrentSameDate(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	placeID := testutil.CreatePlace(t, store, owner.ID, domain.ApprovalApproved, 20000)

	const n = 6
	users := make([]int64, n)
	for i := range users {
		users[i] = testutil.CreateUser(t, store, domain.RoleUser).ID
	}

	svc := inventory.New(store, &recordedChanges{}, nil, nil, nil)
	day := domain.Day(time.Now()).AddDate(0, 0, 20)

	start := make(chan struct{})
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i, userID := range users {
		wg.Add(1)
		go func(i int, userID int64) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.ReservePlace(ctx, userID, placeID, day)
		}(i, userID)
	}
	close(start)
	wg.Wait()

	var ok, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, inventory.ErrDateReserved):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, taken)

	cal, err := store.Places().Calendar(ctx, placeID, day, day)
	require.NoError(t, err)
	assert.Len(t, cal.Reserved, 1)
}
