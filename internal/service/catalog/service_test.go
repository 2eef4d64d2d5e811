package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/evently/internal/domain"
	redisrepo "github.com/kirinyoku/evently/internal/repository/redis"
)

func cachedEvent(t *testing.T, status domain.ApprovalStatus) string {
	t.Helper()

	b, err := json.Marshal(domain.Event{
		ID:       1,
		Name:     "Spring Gala",
		Approval: domain.Approval{Status: status},
		TicketTypes: []domain.TicketType{
			{ID: 10, EventID: 1, Name: "VIP", PriceCents: 2500, Quantity: 4},
		},
	})
	require.NoError(t, err)

	return string(b)
}

func TestGetEvent_ServedFromCache(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := New(nil, redisrepo.New(db), nil, nil, Config{})

	mock.ExpectGet(redisrepo.KeyEventDetails(1)).SetVal(cachedEvent(t, domain.ApprovalApproved))

	e, err := s.GetEvent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Spring Gala", e.Name)
	require.Len(t, e.TicketTypes, 1)
	assert.Equal(t, 4, e.TicketTypes[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEvent_HidesUnapproved(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := New(nil, redisrepo.New(db), nil, nil, Config{})

	mock.ExpectGet(redisrepo.KeyEventDetails(1)).SetVal(cachedEvent(t, domain.ApprovalPending))

	_, err := s.GetEvent(context.Background(), 1)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestListEvents_ServedFromGeneration(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := New(nil, redisrepo.New(db), nil, nil, Config{})

	hash := filterHash("concert", "", 20, 0)
	mock.ExpectGet(redisrepo.KeyListingGeneration(redisrepo.KindEvent)).SetVal("4")
	mock.ExpectGet(redisrepo.KeyListing(redisrepo.KindEvent, 4, hash)).SetVal(`[]`)

	events, err := s.ListEvents(context.Background(), domain.EventFilter{EventType: "concert"})
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventChanged_Invalidates(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := New(nil, redisrepo.New(db), nil, nil, Config{})

	mock.ExpectDel(redisrepo.KeyEventDetails(9)).SetVal(1)
	mock.ExpectIncr(redisrepo.KeyListingGeneration(redisrepo.KindEvent)).SetVal(1)

	s.EventChanged(context.Background(), 9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidate_UnknownKind(t *testing.T) {
	db, _ := redismock.NewClientMock()
	s := New(nil, redisrepo.New(db), nil, nil, Config{})

	assert.Error(t, s.Invalidate(context.Background(), "venue", 1))
	assert.NoError(t, New(nil, nil, nil, nil, Config{}).Invalidate(context.Background(), "venue", 1))
}

func TestPage(t *testing.T) {
	s := New(nil, nil, nil, nil, Config{DefaultPage: 20, MaxPage: 50})

	tests := []struct {
		limit, offset int
		wantL, wantO  int
	}{
		{0, 0, 20, 0},
		{10, 5, 10, 5},
		{500, -3, 50, 0},
	}

	for _, tt := range tests {
		l, o := s.page(tt.limit, tt.offset)
		assert.Equal(t, tt.wantL, l)
		assert.Equal(t, tt.wantO, o)
	}
}

func TestAvailability_RejectsLongRange(t *testing.T) {
	s := New(nil, nil, nil, nil, Config{})

	from := domain.Day(s.now())
	_, err := s.Availability(context.Background(), 1, from, from.AddDate(2, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = s.Availability(context.Background(), 1, from, from.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}
