package document

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRPNG(t *testing.T) {
	b, err := QRPNG("TKT-ABC123")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, qrSize, img.Bounds().Dx())
}

func TestWriteTickets(t *testing.T) {
	var buf bytes.Buffer

	err := WriteTickets(&buf, []TicketPage{
		{
			Code:           "TKT-1",
			EventName:      "Spring Gala",
			StartsAt:       time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC),
			Location:       "1 Main St",
			TicketTypeName: "VIP",
			Price:          "25.00 USD",
			HolderName:     "Ada Lovelace",
		},
		{Code: "TKT-2", EventName: "Spring Gala", TicketTypeName: "VIP"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteTickets_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteTickets(&buf, nil))
}

func TestWritePlaceBooking(t *testing.T) {
	var buf bytes.Buffer

	err := WritePlaceBooking(&buf, PlaceBooking{
		ReservationID: 12,
		PlaceName:     "Harbor Hall",
		Location:      "2 Side St",
		Date:          time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		Total:         "300.00 USD",
		Status:        "confirmed",
		HolderName:    "Ada Lovelace",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
