package payments

import (
	"errors"
)

var (
	ErrPaymentsDisabled      = errors.New("payments are disabled")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrNotOwner              = errors.New("not your reservation")
	ErrReservationNotPending = errors.New("reservation is not pending")
	ErrAlreadyPaid           = errors.New("reservation already paid")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrNoCustomer            = errors.New("no payment customer on file")
	ErrNothingToPay          = errors.New("reservation total is zero")
)
