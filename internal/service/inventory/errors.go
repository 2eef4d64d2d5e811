package inventory

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrTicketTypeNotFound    = errors.New("ticket type not found")
	ErrEventNotApproved      = errors.New("event not approved")
	ErrInsufficientQuantity  = errors.New("insufficient quantity")
	ErrPlaceNotFound         = errors.New("place not found")
	ErrPlaceNotApproved      = errors.New("place not approved")
	ErrDateInPast            = errors.New("date in the past")
	ErrDateBlocked           = errors.New("date blocked")
	ErrDateReserved          = errors.New("date already reserved")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrForbidden             = errors.New("reservation belongs to another user")
	ErrReservationNotPending = errors.New("only pending reservations can be cancelled")
	ErrRateLimited           = errors.New("rate limited")
)

// RateLimitedError carries how long the caller should back off.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter)
}

func (e RateLimitedError) Unwrap() error { return ErrRateLimited }
