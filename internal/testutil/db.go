// Package testutil holds Postgres fixtures for integration tests. Tests using
// it are skipped unless TEST_DATABASE_URL points at a reachable database.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/postgres"
	postgresrepo "github.com/kirinyoku/evently/internal/repository/postgres"
	"github.com/kirinyoku/evently/migrations"
)

const tables = `payment_attempts, payments, tickets, reservations, place_availability, places,
	ticket_types, events, provider_requests, user_roles, users`

const advisoryKey = 7_300_411

var seq atomic.Int64

// NewStore connects to TEST_DATABASE_URL, applies migrations and empties every
// table.
func NewStore(t *testing.T) *postgresrepo.Store {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.New(ctx, postgres.Config{DSN: dsn, MaxConns: 16, AppName: "evently-test", StatementTimeout: 30 * time.Second})
	if err != nil {
		t.Skipf("postgres unreachable: %v", err)
	}
	t.Cleanup(pool.Close)

	lock(t, pool)

	require.NoError(t, migrations.Apply(ctx, pool))
	truncate(t, pool)

	return postgresrepo.NewStore(pool)
}

// lock serializes tests of every package that share the database. The lock is
// held by one pooled connection until the test ends.
func lock(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)

	_, err = conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, advisoryKey)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryKey)
		conn.Release()
	})
}

func truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `TRUNCATE `+tables+` RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

// CreateUser inserts a user holding roles. The password hash is not a real hash.
func CreateUser(t *testing.T, store *postgresrepo.Store, roles ...domain.Role) *domain.User {
	t.Helper()

	n := seq.Add(1)
	u := &domain.User{
		UserName:     fmt.Sprintf("user%d", n),
		Email:        fmt.Sprintf("user%d@example.com", n),
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", n),
		Roles:        roles,
	}

	id, err := store.Users().Create(context.Background(), u)
	require.NoError(t, err)
	u.ID = id

	return u
}

// CreateEvent inserts an event with one ticket type and sets its review status.
func CreateEvent(
	t *testing.T,
	store *postgresrepo.Store,
	ownerID int64,
	status domain.ApprovalStatus,
	priceCents int64,
	quantity int,
) (eventID, ticketTypeID int64) {
	t.Helper()

	ctx := context.Background()
	events := store.Events()

	eventID, err := events.Create(ctx, &domain.Event{
		OwnerID:         ownerID,
		Name:            fmt.Sprintf("Event %d", seq.Add(1)),
		EventType:       "concert",
		StartsAt:        time.Now().Add(30 * 24 * time.Hour),
		LocationAddress: "1 Main St",
		TicketTypes: []domain.TicketType{
			{Name: "General", PriceCents: priceCents, Quantity: quantity},
		},
	})
	require.NoError(t, err)

	if status != domain.ApprovalPending {
		require.NoError(t, events.SetApproval(ctx, eventID, domain.Approval{Status: status}))
	}

	e, err := events.GetByID(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, e.TicketTypes, 1)

	return eventID, e.TicketTypes[0].ID
}

// CreatePlace inserts a place and sets its review status.
func CreatePlace(
	t *testing.T,
	store *postgresrepo.Store,
	ownerID int64,
	status domain.ApprovalStatus,
	priceCents int64,
) int64 {
	t.Helper()

	ctx := context.Background()
	places := store.Places()

	id, err := places.Create(ctx, &domain.Place{
		OwnerID:      ownerID,
		Name:         fmt.Sprintf("Hall %d", seq.Add(1)),
		Location:     "2 Side St",
		PlaceType:    "hall",
		MaxAttendees: 100,
		PriceCents:   priceCents,
	})
	require.NoError(t, err)

	if status != domain.ApprovalPending {
		require.NoError(t, places.SetApproval(ctx, id, domain.Approval{Status: status}))
	}

	return id
}
