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

type cachedItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestGetOrSetJSON_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := New(db)

	mock.ExpectGet("k").SetVal(`{"id":7,"name":"Gala"}`)

	got, err := GetOrSetJSON(context.Background(), c, "k", time.Minute, func(context.Context) (cachedItem, error) {
		t.Fatal("loader must not run on a hit")
		return cachedItem{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, cachedItem{ID: 7, Name: "Gala"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrSetJSON_MissLoadsAndStores(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := New(db)

	mock.ExpectGet("k").RedisNil()
	mock.ExpectGet("k").RedisNil()
	mock.ExpectSet("k", `{"id":7,"name":"Gala"}`, time.Minute).SetVal("OK")

	calls := 0
	got, err := GetOrSetJSON(context.Background(), c, "k", time.Minute, func(context.Context) (cachedItem, error) {
		calls++
		return cachedItem{ID: 7, Name: "Gala"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(7), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrSetJSON_LoaderErrorNotCached(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := New(db)

	mock.ExpectGet("k").RedisNil()
	mock.ExpectGet("k").RedisNil()

	boom := errors.New("boom")
	_, err := GetOrSetJSON(context.Background(), c, "k", time.Minute, func(context.Context) (cachedItem, error) {
		return cachedItem{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_InvalidateEventBumpsGeneration(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := New(db)

	mock.ExpectDel(KeyEventDetails(3)).SetVal(1)
	mock.ExpectIncr(KeyListingGeneration(KindEvent)).SetVal(5)
	mock.ExpectGet(KeyListingGeneration(KindEvent)).SetVal("5")

	require.NoError(t, c.InvalidateEvent(context.Background(), 3))

	gen, err := c.ListingGeneration(context.Background(), KindEvent)
	require.NoError(t, err)
	assert.Equal(t, int64(5), gen)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_ListingGenerationDefaultsToZero(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := New(db)

	mock.ExpectGet(KeyListingGeneration(KindPlace)).RedisNil()

	gen, err := c.ListingGeneration(context.Background(), KindPlace)
	require.NoError(t, err)
	assert.Zero(t, gen)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "evently:v1:event:9:details", KeyEventDetails(9))
	assert.Equal(t, "evently:v1:place:list:g3:abc", KeyListing(KindPlace, 3, "abc"))
	assert.Equal(t, "evently:v1:idem:purchase:12:4:key-1", KeyIdem(IdemScopePurchase, 12, 4, "key-1"))
}
