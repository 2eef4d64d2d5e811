package provider

import (
	"errors"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrPlaceNotFound        = errors.New("place not found")
	ErrTicketTypeNotFound   = errors.New("ticket type not found")
	ErrAvailabilityNotFound = errors.New("availability entry not found")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrForbidden            = errors.New("not the owner")
	ErrTicketUsed           = errors.New("ticket already used")
	ErrTicketNotConfirmed   = errors.New("ticket reservation is not confirmed")
	ErrNoDates              = errors.New("at least one date is required")
)

// ValidationError reports a rejected field of a catalog entry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
