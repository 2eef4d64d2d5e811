package tickets

import (
	"errors"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrNotOwner            = errors.New("not your reservation")
	ErrNotConfirmed        = errors.New("reservation is not confirmed")
	ErrCancelled           = errors.New("reservation is cancelled")
	ErrWrongKind           = errors.New("reservation kind does not match")
)
