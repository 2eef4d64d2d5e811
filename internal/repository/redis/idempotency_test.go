package redisrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStore_Flow(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewIdempotencyStore(db, IdempotencyConfig{LockTTL: time.Minute, ResultTTL: 2 * time.Hour})
	ctx := context.Background()
	k := IdemKey{Scope: IdemScopePurchase, Resource: 7, UserID: 3, Key: "abc"}

	mock.ExpectGet(k.String()).RedisNil()
	mock.ExpectSetNX(k.String(), "LOCK", time.Minute).SetVal(true)
	mock.ExpectGet(k.String()).SetVal("LOCK")
	mock.ExpectSet(k.String(), `RES:{"id":1}`, 2*time.Hour).SetVal("OK")
	mock.ExpectGet(k.String()).SetVal(`RES:{"id":1}`)

	state, _, err := s.Lookup(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, IdemAbsent, state)

	locked, err := s.AcquireLock(ctx, k)
	require.NoError(t, err)
	assert.True(t, locked)

	state, _, err = s.Lookup(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, IdemInFlight, state, "a held lock is not a result")

	require.NoError(t, s.SaveResult(ctx, k, `{"id":1}`))

	state, payload, err := s.Lookup(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, IdemDone, state)
	assert.Equal(t, `{"id":1}`, payload)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyStore_ScopeTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewIdempotencyStore(db, IdempotencyConfig{
		ResultTTL: 2 * time.Hour,
		ScopeTTL:  map[string]time.Duration{IdemScopeCheckout: 30 * time.Minute},
	})
	ctx := context.Background()

	assert.Equal(t, 2*time.Hour, s.ResultTTL(IdemScopePlace))
	assert.Equal(t, 30*time.Minute, s.ResultTTL(IdemScopeCheckout))

	checkout := IdemKey{Scope: IdemScopeCheckout, Resource: 5, UserID: 1, Key: "k"}
	place := IdemKey{Scope: IdemScopePlace, Resource: 5, UserID: 1, Key: "k"}
	mock.ExpectSet(checkout.String(), "RES:{}", 30*time.Minute).SetVal("OK")
	mock.ExpectSet(place.String(), "RES:{}", 2*time.Hour).SetVal("OK")

	require.NoError(t, s.SaveResult(ctx, checkout, "{}"))
	require.NoError(t, s.SaveResult(ctx, place, "{}"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyStore_Defaults(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewIdempotencyStore(db, IdempotencyConfig{})
	k := IdemKey{Scope: IdemScopePlace, Resource: 1, UserID: 1, Key: "k"}

	mock.ExpectSetNX(k.String(), "LOCK", time.Minute).SetVal(false)
	mock.ExpectDel(k.String()).SetVal(1)

	locked, err := s.AcquireLock(context.Background(), k)
	require.NoError(t, err)
	assert.False(t, locked)
	assert.Equal(t, 2*time.Hour, s.ResultTTL(IdemScopePlace))

	require.NoError(t, s.Release(context.Background(), k))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyStore_Errors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewIdempotencyStore(db, IdempotencyConfig{})
	k := IdemKey{Scope: IdemScopePurchase, Resource: 1, UserID: 1, Key: "k"}
	boom := errors.New("connection refused")

	mock.ExpectGet(k.String()).SetErr(boom)
	mock.ExpectSetNX(k.String(), "LOCK", time.Minute).SetErr(boom)

	_, _, err := s.Lookup(context.Background(), k)
	assert.ErrorIs(t, err, boom)

	_, err = s.AcquireLock(context.Background(), k)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
