package httpgin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/evently/internal/auth"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/payment"
	"github.com/kirinyoku/evently/internal/service/account"
	"github.com/kirinyoku/evently/internal/service/admin"
	"github.com/kirinyoku/evently/internal/service/catalog"
	"github.com/kirinyoku/evently/internal/service/inventory"
	"github.com/kirinyoku/evently/internal/service/payments"
	"github.com/kirinyoku/evently/internal/service/promotion"
	"github.com/kirinyoku/evently/internal/service/provider"
	"github.com/kirinyoku/evently/internal/service/tickets"
	"github.com/kirinyoku/evently/internal/storage"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable maps service errors to HTTP responses. The first match wins.
var errorTable = []errorMapping{
	// not found
	{catalog.ErrEventNotFound, http.StatusNotFound, "event_not_found"},
	{catalog.ErrPlaceNotFound, http.StatusNotFound, "place_not_found"},
	{provider.ErrEventNotFound, http.StatusNotFound, "event_not_found"},
	{provider.ErrPlaceNotFound, http.StatusNotFound, "place_not_found"},
	{provider.ErrTicketTypeNotFound, http.StatusNotFound, "ticket_type_not_found"},
	{provider.ErrAvailabilityNotFound, http.StatusNotFound, "availability_not_found"},
	{provider.ErrTicketNotFound, http.StatusNotFound, "ticket_not_found"},
	{admin.ErrEventNotFound, http.StatusNotFound, "event_not_found"},
	{admin.ErrPlaceNotFound, http.StatusNotFound, "place_not_found"},
	{inventory.ErrTicketTypeNotFound, http.StatusNotFound, "ticket_type_not_found"},
	{inventory.ErrPlaceNotFound, http.StatusNotFound, "place_not_found"},
	{inventory.ErrReservationNotFound, http.StatusNotFound, "reservation_not_found"},
	{tickets.ErrReservationNotFound, http.StatusNotFound, "reservation_not_found"},
	{tickets.ErrTicketNotFound, http.StatusNotFound, "ticket_not_found"},
	{payments.ErrReservationNotFound, http.StatusNotFound, "reservation_not_found"},
	{payments.ErrPaymentNotFound, http.StatusNotFound, "payment_not_found"},
	{promotion.ErrRequestNotFound, http.StatusNotFound, "provider_request_not_found"},
	{promotion.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{account.ErrUserNotFound, http.StatusNotFound, "user_not_found"},

	// ownership
	{provider.ErrForbidden, http.StatusForbidden, "forbidden"},
	{inventory.ErrForbidden, http.StatusForbidden, "forbidden"},
	{tickets.ErrNotOwner, http.StatusForbidden, "forbidden"},
	{payments.ErrNotOwner, http.StatusForbidden, "forbidden"},

	// state conflicts
	{inventory.ErrEventNotApproved, http.StatusConflict, "event_not_approved"},
	{inventory.ErrPlaceNotApproved, http.StatusConflict, "place_not_approved"},
	{inventory.ErrInsufficientQuantity, http.StatusConflict, "insufficient_quantity"},
	{inventory.ErrDateBlocked, http.StatusConflict, "date_blocked"},
	{inventory.ErrDateReserved, http.StatusConflict, "date_reserved"},
	{inventory.ErrReservationNotPending, http.StatusConflict, "reservation_not_pending"},
	{provider.ErrTicketUsed, http.StatusConflict, "ticket_used"},
	{provider.ErrTicketNotConfirmed, http.StatusConflict, "ticket_not_confirmed"},
	{tickets.ErrNotConfirmed, http.StatusConflict, "reservation_not_confirmed"},
	{tickets.ErrCancelled, http.StatusConflict, "reservation_cancelled"},
	{payments.ErrReservationNotPending, http.StatusConflict, "reservation_not_pending"},
	{payments.ErrAlreadyPaid, http.StatusConflict, "already_paid"},
	{promotion.ErrRequestPending, http.StatusConflict, "provider_request_pending"},
	{promotion.ErrAlreadyProvider, http.StatusConflict, "already_provider"},
	{account.ErrUserExists, http.StatusConflict, "user_exists"},
	{domain.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},

	// bad input
	{inventory.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
	{inventory.ErrDateInPast, http.StatusBadRequest, "date_in_past"},
	{catalog.ErrInvalidRange, http.StatusBadRequest, "invalid_range"},
	{provider.ErrNoDates, http.StatusBadRequest, "no_dates"},
	{tickets.ErrWrongKind, http.StatusBadRequest, "wrong_reservation_kind"},
	{promotion.ErrMissingDocuments, http.StatusBadRequest, "missing_documents"},
	{account.ErrUserNameRequired, http.StatusBadRequest, "user_name_required"},
	{account.ErrInvalidEmail, http.StatusBadRequest, "invalid_email"},
	{auth.ErrWeakPassword, http.StatusBadRequest, "weak_password"},
	{domain.ErrNoteRequired, http.StatusBadRequest, "note_required"},
	{payments.ErrNothingToPay, http.StatusBadRequest, "nothing_to_pay"},
	{payments.ErrNoCustomer, http.StatusBadRequest, "no_customer"},
	{payments.ErrPaymentsDisabled, http.StatusBadRequest, "payments_disabled"},
	{payment.ErrUnsupported, http.StatusBadRequest, "unsupported"},
	{storage.ErrDisabled, http.StatusBadRequest, "uploads_disabled"},

	// auth
	{account.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},

	// upstream
	{payment.ErrGateway, http.StatusBadGateway, "gateway_error"},
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var rl inventory.RateLimitedError
	if errors.As(err, &rl) {
		secs := int(rl.RetryAfter.Seconds())
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited", Code: "rate_limited"})
		return
	}

	var ve provider.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Error(), Code: "validation"})
		return
	}

	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			c.JSON(m.status, ErrorResponse{Error: m.err.Error(), Code: m.code})
			return
		}
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "internal"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: "bad_request"})
}
