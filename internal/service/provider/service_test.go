package provider_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/service/provider"
	"github.com/kirinyoku/evently/internal/testutil"
)

type nopChanges struct{}

func (nopChanges) EventChanged(context.Context, int64) {}
func (nopChanges) PlaceChanged(context.Context, int64) {}

func eventInput() provider.EventInput {
	return provider.EventInput{
		Name:            "Derby",
		EventType:       "football",
		StartsAt:        time.Now().Add(72 * time.Hour),
		TeamA:           "North",
		TeamB:           "South",
		LocationAddress: "Stadium Rd",
		TicketTypes: []provider.TicketTypeInput{
			{Name: "Stand", PriceCents: 1500, Quantity: 100},
			{Name: "VIP", PriceCents: 9000, Quantity: 10},
		},
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	svc := provider.New(nil, nopChanges{})

	tests := []struct {
		name  string
		edit  func(in *provider.EventInput)
		field string
	}{
		{"blank name", func(in *provider.EventInput) { in.Name = "  " }, "name"},
		{"no type", func(in *provider.EventInput) { in.EventType = "" }, "event_type"},
		{"past start", func(in *provider.EventInput) { in.StartsAt = time.Now().Add(-time.Hour) }, "starts_at"},
		{"negative price", func(in *provider.EventInput) { in.TicketTypes[0].PriceCents = -1 }, "ticket_types.price"},
		{"lone latitude", func(in *provider.EventInput) { lat := 10.0; in.Latitude = &lat }, "coordinates"},
		{"id on create", func(in *provider.EventInput) { id := int64(3); in.TicketTypes[0].ID = &id }, "ticket_types.id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := eventInput()
			tt.edit(&in)

			_, err := svc.CreateEvent(context.Background(), 1, in)

			var verr provider.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestEventLifecycle(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	stranger := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	svc := provider.New(store, nopChanges{})

	id, err := svc.CreateEvent(ctx, owner.ID, eventInput())
	require.NoError(t, err)

	e, err := svc.GetEvent(ctx, owner.ID, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalPending, e.Approval.Status)
	require.Len(t, e.TicketTypes, 2)

	_, err = svc.GetEvent(ctx, stranger.ID, id)
	assert.ErrorIs(t, err, provider.ErrForbidden)

	rejected, err := e.Approval.Reject("missing permit")
	require.NoError(t, err)
	require.NoError(t, store.Events().SetApproval(ctx, id, rejected))

	stand := e.TicketTypes[0]
	in := eventInput()
	in.Name = "Derby (rescheduled)"
	in.TicketTypes = []provider.TicketTypeInput{
		{ID: &stand.ID, Name: stand.Name, PriceCents: 2000, AddQuantity: 5},
		{Name: "Family", PriceCents: 4000, Quantity: 20},
	}
	require.NoError(t, svc.UpdateEvent(ctx, owner.ID, id, in))

	e, err = svc.GetEvent(ctx, owner.ID, id)
	require.NoError(t, err)
	assert.Equal(t, "Derby (rescheduled)", e.Name)
	assert.Equal(t, domain.ApprovalPending, e.Approval.Status)
	assert.Nil(t, e.Approval.Note, "an edit clears the review note")

	byName := map[string]domain.TicketType{}
	for _, tt := range e.TicketTypes {
		byName[tt.Name] = tt
	}
	require.Len(t, byName, 2, "VIP was dropped from the edit")
	assert.Equal(t, int64(2000), byName["Stand"].PriceCents)
	assert.Equal(t, 105, byName["Stand"].Quantity)
	assert.Equal(t, 20, byName["Family"].Quantity)

	unknown := int64(999999)
	in.TicketTypes = []provider.TicketTypeInput{{ID: &unknown, Name: "Ghost"}}
	err = svc.UpdateEvent(ctx, owner.ID, id, in)
	assert.ErrorIs(t, err, provider.ErrTicketTypeNotFound)

	assert.ErrorIs(t, svc.DeleteEvent(ctx, stranger.ID, id), provider.ErrForbidden)
	require.NoError(t, svc.DeleteEvent(ctx, owner.ID, id))

	_, err = svc.GetEvent(ctx, owner.ID, id)
	assert.ErrorIs(t, err, provider.ErrEventNotFound)
}

func TestBlockDates(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	stranger := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	placeID := testutil.CreatePlace(t, store, owner.ID, domain.ApprovalApproved, 10000)
	svc := provider.New(store, nopChanges{})

	day := domain.Day(time.Now()).AddDate(0, 0, 5)
	dates := []time.Time{day, day.AddDate(0, 0, 1)}

	_, err := svc.BlockDates(ctx, owner.ID, placeID, nil, "")
	assert.ErrorIs(t, err, provider.ErrNoDates)

	_, err = svc.BlockDates(ctx, stranger.ID, placeID, dates, "")
	assert.ErrorIs(t, err, provider.ErrForbidden)

	n, err := svc.BlockDates(ctx, owner.ID, placeID, dates, "private event")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = svc.BlockDates(ctx, owner.ID, placeID, dates, "private event")
	require.NoError(t, err)
	assert.Zero(t, n, "blocking twice is a no-op")

	cal, err := svc.Calendar(ctx, owner.ID, placeID, day, day.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, cal.Blocked, 2)

	assert.ErrorIs(t, svc.UnblockDate(ctx, stranger.ID, cal.Blocked[0].ID), provider.ErrForbidden)
	require.NoError(t, svc.UnblockDate(ctx, owner.ID, cal.Blocked[0].ID))
	assert.ErrorIs(t, svc.UnblockDate(ctx, owner.ID, cal.Blocked[0].ID), provider.ErrAvailabilityNotFound)
}

func TestRedeemTicket(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	stranger := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	buyer := testutil.CreateUser(t, store, domain.RoleUser)
	_, ttID := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalApproved, 500, 10)
	svc := provider.New(store, nopChanges{})

	p, err := store.Reservations().PurchaseTickets(ctx, buyer.ID, ttID, 1)
	require.NoError(t, err)
	code := p.Tickets[0].Code

	_, err = svc.RedeemTicket(ctx, owner.ID, code)
	assert.ErrorIs(t, err, provider.ErrTicketNotConfirmed)

	require.NoError(t, store.Reservations().SetStatus(ctx, p.Reservation.ID,
		domain.ReservationPending, domain.ReservationConfirmed))

	_, err = svc.RedeemTicket(ctx, stranger.ID, code)
	assert.ErrorIs(t, err, provider.ErrForbidden)

	_, err = svc.RedeemTicket(ctx, owner.ID, "NO-SUCH-CODE")
	assert.ErrorIs(t, err, provider.ErrTicketNotFound)

	v, err := svc.RedeemTicket(ctx, owner.ID, code)
	require.NoError(t, err)
	assert.True(t, v.IsUsed)
	assert.NotNil(t, v.UsedAt)

	_, err = svc.RedeemTicket(ctx, owner.ID, code)
	assert.ErrorIs(t, err, provider.ErrTicketUsed)
}
