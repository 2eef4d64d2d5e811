package payments_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/evently/internal/broker"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/payment"
	"github.com/kirinyoku/evently/internal/service/payments"
	"github.com/kirinyoku/evently/internal/testutil"
)

type publishLog struct {
	mu     sync.Mutex
	queues []string
}

func (p *publishLog) Publish(_ context.Context, queue string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queues = append(p.queues, queue)
	return nil
}

func TestDisabled(t *testing.T) {
	svc := payments.New(nil, nil, nil, nil, payments.Config{})
	ctx := context.Background()

	_, err := svc.CreateCheckout(ctx, 1, 1, "", "")
	assert.ErrorIs(t, err, payments.ErrPaymentsDisabled)

	_, err = svc.Reconcile(ctx, "cs_1")
	assert.ErrorIs(t, err, payments.ErrPaymentsDisabled)

	_, err = svc.CreateCustomer(ctx, 1)
	assert.ErrorIs(t, err, payments.ErrPaymentsDisabled)

	_, err = svc.PortalSession(ctx, 1, "")
	assert.ErrorIs(t, err, payments.ErrPaymentsDisabled)
}

func TestCheckoutAndReconcile(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	buyer := testutil.CreateUser(t, store, domain.RoleUser)
	other := testutil.CreateUser(t, store, domain.RoleUser)
	_, ttID := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalApproved, 2500, 10)

	gw := testutil.NewGateway()
	pub := &publishLog{}
	svc := payments.New(store, gw, pub, nil, payments.Config{PublicURL: "https://evently.example.com"})

	purchase, err := store.Reservations().PurchaseTickets(ctx, buyer.ID, ttID, 2)
	require.NoError(t, err)
	resID := purchase.Reservation.ID

	_, err = svc.CreateCheckout(ctx, other.ID, resID, "", "")
	assert.ErrorIs(t, err, payments.ErrNotOwner)

	p, err := svc.CreateCheckout(ctx, buyer.ID, resID, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), p.AmountCents)
	assert.Equal(t, domain.PaymentPending, p.Status)
	assert.NotEmpty(t, p.CheckoutURL)

	require.Len(t, gw.Requests, 1)
	req := gw.Requests[0]
	assert.Equal(t, int64(2500), req.UnitAmount)
	assert.Equal(t, int64(2), req.Quantity)
	assert.Equal(t, buyer.Email, req.CustomerEmail)
	assert.Contains(t, req.SuccessURL, "https://evently.example.com/me/reservations/")

	// A retry replaces the unpaid session.
	p, err = svc.CreateCheckout(ctx, buyer.ID, resID, "https://shop.example.com/ok", "")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/ok", gw.Requests[1].SuccessURL)

	got, err := svc.Reconcile(ctx, p.TransactionRef)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, got.Status)

	gw.SetStatus(p.TransactionRef, payment.StatusPaid)

	got, err = svc.Reconcile(ctx, p.TransactionRef)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSucceeded, got.Status)

	res, err := store.Reservations().GetByID(ctx, resID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, res.Status)
	assert.Equal(t, []string{broker.QueueReservationConfirmed}, pub.queues)

	got, err = svc.Reconcile(ctx, p.TransactionRef)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSucceeded, got.Status)
	assert.Len(t, pub.queues, 1, "a repeated notification is a no-op")

	_, err = svc.CreateCheckout(ctx, buyer.ID, resID, "", "")
	assert.ErrorIs(t, err, payments.ErrAlreadyPaid)

	mine, err := svc.PaymentFor(ctx, buyer.ID, resID)
	require.NoError(t, err)
	assert.Equal(t, p.TransactionRef, mine.TransactionRef)

	_, err = svc.PaymentFor(ctx, other.ID, resID)
	assert.ErrorIs(t, err, payments.ErrNotOwner)

	_, err = svc.Reconcile(ctx, "cs_unknown")
	assert.ErrorIs(t, err, payments.ErrPaymentNotFound)
}

func TestReconcile_Failed(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	buyer := testutil.CreateUser(t, store, domain.RoleUser)
	placeID := testutil.CreatePlace(t, store, owner.ID, domain.ApprovalApproved, 40000)

	gw := testutil.NewGateway()
	svc := payments.New(store, gw, nil, nil, payments.Config{})

	day := domain.Day(time.Now()).AddDate(0, 0, 3)
	res, err := store.Reservations().ReservePlace(ctx, buyer.ID, placeID, day)
	require.NoError(t, err)

	p, err := svc.CreateCheckout(ctx, buyer.ID, res.ID, "", "")
	require.NoError(t, err)
	assert.Contains(t, gw.Requests[0].Description, day.Format("2006-01-02"))

	gw.SetStatus(p.TransactionRef, payment.StatusFailed)

	got, err := svc.Reconcile(ctx, p.TransactionRef)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, got.Status)

	r, err := store.Reservations().GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationPending, r.Status, "a failed payment leaves the reservation open")
}

func TestReconcile_CancelledReservation(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	buyer := testutil.CreateUser(t, store, domain.RoleUser)
	_, ttID := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalApproved, 800, 10)

	gw := testutil.NewGateway()
	svc := payments.New(store, gw, nil, nil, payments.Config{})

	purchase, err := store.Reservations().PurchaseTickets(ctx, buyer.ID, ttID, 1)
	require.NoError(t, err)

	p, err := svc.CreateCheckout(ctx, buyer.ID, purchase.Reservation.ID, "", "")
	require.NoError(t, err)

	require.NoError(t, store.Reservations().SetStatus(ctx, purchase.Reservation.ID,
		domain.ReservationPending, domain.ReservationCancelled))
	gw.SetStatus(p.TransactionRef, payment.StatusPaid)

	_, err = svc.Reconcile(ctx, p.TransactionRef)
	assert.ErrorIs(t, err, payments.ErrReservationNotPending)

	got, err := store.Payments().GetByRef(ctx, p.TransactionRef)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, got.Status)
}

func TestCustomerAndPortal(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, store, domain.RoleUser)
	svc := payments.New(store, testutil.NewGateway(), nil, nil, payments.Config{})

	_, err := svc.PortalSession(ctx, u.ID, "")
	assert.ErrorIs(t, err, payments.ErrNoCustomer)

	id, err := svc.CreateCustomer(ctx, u.ID)
	require.NoError(t, err)

	again, err := svc.CreateCustomer(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	url, err := svc.PortalSession(ctx, u.ID, "https://evently.example.com")
	require.NoError(t, err)
	assert.Contains(t, url, id)
}

func TestReconcile_SupersededSession(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	buyer := testutil.CreateUser(t, store, domain.RoleUser)
	_, ttID := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalApproved, 1000, 10)

	gw := testutil.NewGateway()
	svc := payments.New(store, gw, nil, nil, payments.Config{})

	purchase, err := store.Reservations().PurchaseTickets(ctx, buyer.ID, ttID, 1)
	require.NoError(t, err)
	resID := purchase.Reservation.ID

	first, err := svc.CreateCheckout(ctx, buyer.ID, resID, "", "")
	require.NoError(t, err)

	second, err := svc.CreateCheckout(ctx, buyer.ID, resID, "", "")
	require.NoError(t, err)
	require.NotEqual(t, first.TransactionRef, second.TransactionRef)
	assert.Equal(t, first.ID, second.ID, "one payment row per reservation")

	gw.SetStatus(first.TransactionRef, payment.StatusPaid)

	got, err := svc.Reconcile(ctx, first.TransactionRef)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSucceeded, got.Status)
	assert.Equal(t, first.TransactionRef, got.TransactionRef)

	res, err := store.Reservations().GetByID(ctx, resID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, res.Status)

	stored, err := svc.PaymentFor(ctx, buyer.ID, resID)
	require.NoError(t, err)
	assert.Equal(t, first.TransactionRef, stored.TransactionRef, "the paying session is recorded")

	got, err = svc.Reconcile(ctx, second.TransactionRef)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSucceeded, got.Status)
}

func TestReconcile_SupersededSessionFails(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, domain.RoleServiceProvider)
	buyer := testutil.CreateUser(t, store, domain.RoleUser)
	_, ttID := testutil.CreateEvent(t, store, owner.ID, domain.ApprovalApproved, 1000, 10)

	gw := testutil.NewGateway()
	svc := payments.New(store, gw, nil, nil, payments.Config{})

	purchase, err := store.Reservations().PurchaseTickets(ctx, buyer.ID, ttID, 1)
	require.NoError(t, err)

	first, err := svc.CreateCheckout(ctx, buyer.ID, purchase.Reservation.ID, "", "")
	require.NoError(t, err)
	second, err := svc.CreateCheckout(ctx, buyer.ID, purchase.Reservation.ID, "", "")
	require.NoError(t, err)

	gw.SetStatus(first.TransactionRef, payment.StatusFailed)

	got, err := svc.Reconcile(ctx, first.TransactionRef)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, got.Status)
	assert.Equal(t, second.TransactionRef, got.TransactionRef)

	gw.SetStatus(second.TransactionRef, payment.StatusPaid)

	got, err = svc.Reconcile(ctx, second.TransactionRef)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSucceeded, got.Status)
}
