package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/service/admin"
	"github.com/kirinyoku/evently/internal/testutil"
)

type changeLog struct {
	events []int64
	places []int64
}

func (c *changeLog) EventChanged(_ context.Context, id int64) { c.events = append(c.events, id) }
func (c *changeLog) PlaceChanged(_ context.Context, id int64) { c.places = append(c.places, id) }

func TestApproveEvent(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	eventID, _ := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalPending, 1200, 50)

	changes := &changeLog{}
	gw := testutil.NewGateway()
	svc := admin.New(store, changes, gw, nil, admin.Config{})

	pending, err := svc.PendingEvents(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, svc.ApproveEvent(ctx, eventID))
	assert.Equal(t, []int64{eventID}, changes.events)

	e, err := store.Events().GetByID(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, e.Approval.Status)

	require.NotNil(t, e.GatewayProductID, "approval mirrors the event to the gateway")
	assert.Equal(t, []int64{1200}, gw.Prices[*e.GatewayProductID])
	require.NotNil(t, e.TicketTypes[0].GatewayPriceID)

	assert.ErrorIs(t, svc.ApproveEvent(ctx, eventID), domain.ErrInvalidTransition)
	assert.ErrorIs(t, svc.RejectEvent(ctx, eventID, "too late"), domain.ErrInvalidTransition)
	assert.ErrorIs(t, svc.ApproveEvent(ctx, 999999), admin.ErrEventNotFound)
}

func TestRejectEvent(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	eventID, _ := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalPending, 1200, 50)

	svc := admin.New(store, &changeLog{}, nil, nil, admin.Config{})

	assert.ErrorIs(t, svc.RejectEvent(ctx, eventID, ""), domain.ErrNoteRequired)
	require.NoError(t, svc.RejectEvent(ctx, eventID, " venue permit missing "))

	e, err := store.Events().GetByID(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalRejected, e.Approval.Status)
	require.NotNil(t, e.Approval.Note)
	assert.Equal(t, "venue permit missing", *e.Approval.Note)
	assert.Nil(t, e.GatewayProductID)
}

func TestReviewPlace(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	approveID := testutil.CreatePlace(t, store, owner.ID, domain.ApprovalPending, 5000)
	rejectID := testutil.CreatePlace(t, store, owner.ID, domain.ApprovalPending, 5000)

	changes := &changeLog{}
	svc := admin.New(store, changes, nil, nil, admin.Config{})

	pending, err := svc.PendingPlaces(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, svc.ApprovePlace(ctx, approveID))
	require.NoError(t, svc.RejectPlace(ctx, rejectID, "no fire exit"))
	assert.Equal(t, []int64{approveID, rejectID}, changes.places)

	pending, err = svc.PendingPlaces(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.ErrorIs(t, svc.ApprovePlace(ctx, rejectID), domain.ErrInvalidTransition)
	assert.ErrorIs(t, svc.RejectPlace(ctx, 999999, "x"), admin.ErrPlaceNotFound)
}
