package httpgin

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/evently/internal/domain"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		err  error
	}{
		{"0", 0, nil},
		{"12.5", 1250, nil},
		{"12.50", 1250, nil},
		{"0.01", 1, nil},
		{"1999.99", 199999, nil},
		{"12.505", 0, errAmountScale},
		{"-1", 0, errNegativeAmount},
	}

	for _, tt := range tests {
		got, err := toCents(decimal.RequireFromString(tt.in))
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestEventRequest_AcceptsNumberOrStringPrice(t *testing.T) {
	var req EventRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Gala",
		"event_type": "concert",
		"starts_at": "2030-01-01T19:00:00Z",
		"fixed_price": 10,
		"ticket_types": [{"name": "VIP", "price": "25.75", "quantity": 10}]
	}`), &req))

	in, err := req.toInput()
	require.NoError(t, err)
	require.NotNil(t, in.FixedPriceCents)
	assert.Equal(t, int64(1000), *in.FixedPriceCents)
	require.Len(t, in.TicketTypes, 1)
	assert.Equal(t, int64(2575), in.TicketTypes[0].PriceCents)
}

func TestEventRequest_RejectsFractionalCents(t *testing.T) {
	req := EventRequest{
		Name:        "Gala",
		TicketTypes: []TicketTypeRequest{{Name: "VIP", Price: decimal.RequireFromString("1.001")}},
	}

	_, err := req.toInput()
	assert.Error(t, err)
}

func TestToEventResponse_HidesDocuments(t *testing.T) {
	e := &domain.Event{
		ID:          1,
		Documents:   domain.Documents{"insurance": "https://cdn/x.pdf"},
		TicketTypes: []domain.TicketType{{ID: 2, Name: "VIP", PriceCents: 2575, Quantity: 3}},
	}

	public := toEventResponse(e, false)
	assert.Nil(t, public.Documents)
	assert.Equal(t, "25.75", public.TicketTypes[0].Price.StringFixed(2))

	owner := toEventResponse(e, true)
	assert.Equal(t, "https://cdn/x.pdf", owner.Documents["insurance"])
}

func TestToCalendarResponse(t *testing.T) {
	day := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	cal := &domain.PlaceCalendar{
		PlaceID:  3,
		Blocked:  []domain.PlaceAvailability{{ID: 1, Date: day, IsBlocked: true, Note: "maintenance"}},
		Reserved: []time.Time{day.AddDate(0, 0, 1)},
	}

	public := toCalendarResponse(cal, false)
	assert.Equal(t, "2026-07-04", public.Blocked[0].Date)
	assert.Empty(t, public.Blocked[0].Note)
	assert.Equal(t, []string{"2026-07-05"}, public.Reserved)

	assert.Equal(t, "maintenance", toCalendarResponse(cal, true).Blocked[0].Note)
}
