package httpgin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/payment"
	"github.com/kirinyoku/evently/internal/service/inventory"
	"github.com/kirinyoku/evently/internal/service/payments"
	"github.com/kirinyoku/evently/internal/service/promotion"
	"github.com/kirinyoku/evently/internal/service/provider"
	"github.com/kirinyoku/evently/internal/service/tickets"
	"github.com/kirinyoku/evently/internal/storage"
)

func respond(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondErr(c, err)
	return w
}

func TestRespondErr(t *testing.T) {
	wrap := func(err error) error { return fmt.Errorf("service.x.Op: %w", err) }

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", wrap(inventory.ErrTicketTypeNotFound), http.StatusNotFound, "ticket_type_not_found"},
		{"forbidden", wrap(tickets.ErrNotOwner), http.StatusForbidden, "forbidden"},
		{"sold out", wrap(inventory.ErrInsufficientQuantity), http.StatusConflict, "insufficient_quantity"},
		{"date taken", wrap(inventory.ErrDateReserved), http.StatusConflict, "date_reserved"},
		{"pending request", wrap(promotion.ErrRequestPending), http.StatusConflict, "provider_request_pending"},
		{"transition", wrap(domain.ErrInvalidTransition), http.StatusConflict, "invalid_transition"},
		{"note", wrap(domain.ErrNoteRequired), http.StatusBadRequest, "note_required"},
		{"validation", wrap(provider.ValidationError{Field: "name", Reason: "is required"}), http.StatusBadRequest, "validation"},
		{"payments off", wrap(payments.ErrPaymentsDisabled), http.StatusBadRequest, "payments_disabled"},
		{"uploads off", wrap(storage.ErrDisabled), http.StatusBadRequest, "uploads_disabled"},
		{"gateway", wrap(errors.Join(payment.ErrGateway, errors.New("stripe: 500"))), http.StatusBadGateway, "gateway_error"},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := respond(tt.err)
			assert.Equal(t, tt.status, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Error, "service.x.Op")
		})
	}
}

func TestRespondErr_RateLimited(t *testing.T) {
	w := respond(fmt.Errorf("op: %w", inventory.RateLimitedError{RetryAfter: 2500 * time.Millisecond}))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))

	w = respond(inventory.RateLimitedError{})
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRespondErr_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondErr(c, nil)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}
