package tickets

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/testutil"
)

func TestMoney(t *testing.T) {
	s := New(nil, Config{Currency: "idr"})

	assert.Equal(t, "12.50 IDR", s.money(1250))
	assert.Equal(t, "0.05 IDR", s.money(5))
	assert.Equal(t, "0.00 USD", New(nil, Config{}).money(0))
}

func isPDF(t *testing.T, b []byte) {
	t.Helper()
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "not a PDF")
}

func TestTicketPDFs(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	buyer := testutil.CreateUser(t, store, domain.RoleUser)
	other := testutil.CreateUser(t, store, domain.RoleUser)
	_, ttID := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalApproved, 1999, 10)

	svc := New(store, Config{})

	p, err := store.Reservations().PurchaseTickets(ctx, buyer.ID, ttID, 2)
	require.NoError(t, err)
	resID := p.Reservation.ID

	mine, err := svc.MyTickets(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = svc.ReservationTicketsPDF(ctx, buyer.ID, resID)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	_, err = svc.TicketPDF(ctx, buyer.ID, p.Tickets[0].ID)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	require.NoError(t, store.Reservations().SetStatus(ctx, resID,
		domain.ReservationPending, domain.ReservationConfirmed))

	_, err = svc.ReservationTicketsPDF(ctx, other.ID, resID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.PlaceReservationPDF(ctx, buyer.ID, resID)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	all, err := svc.ReservationTicketsPDF(ctx, buyer.ID, resID)
	require.NoError(t, err)
	isPDF(t, all)

	one, err := svc.TicketPDF(ctx, buyer.ID, p.Tickets[1].ID)
	require.NoError(t, err)
	isPDF(t, one)

	_, err = svc.TicketPDF(ctx, other.ID, p.Tickets[1].ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.TicketPDF(ctx, buyer.ID, uuid.New())
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestPlaceReservationPDF(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	buyer := testutil.CreateUser(t, store, domain.RoleUser)
	placeID := testutil.CreatePlace(t, store, owner.ID, domain.ApprovalApproved, 25000)

	svc := New(store, Config{})

	res, err := store.Reservations().ReservePlace(ctx, buyer.ID, placeID, domain.Day(time.Now()).AddDate(0, 0, 2))
	require.NoError(t, err)

	views, err := svc.MyPlaceReservations(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, res.ID, views[0].ID)
	assert.NotEmpty(t, views[0].PlaceName)

	pdf, err := svc.PlaceReservationPDF(ctx, buyer.ID, res.ID)
	require.NoError(t, err, "a pending booking still prints")
	isPDF(t, pdf)

	_, err = svc.ReservationTicketsPDF(ctx, buyer.ID, res.ID)
	assert.ErrorIs(t, err, ErrWrongKind)

	require.NoError(t, store.Reservations().SetStatus(ctx, res.ID,
		domain.ReservationPending, domain.ReservationCancelled))

	_, err = svc.PlaceReservationPDF(ctx, buyer.ID, res.ID)
	assert.ErrorIs(t, err, ErrCancelled)
}
