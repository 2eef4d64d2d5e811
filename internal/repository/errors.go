package repository

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrNotApproved          = errors.New("not approved")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrDateBlocked          = errors.New("date blocked")
	ErrDateReserved         = errors.New("date already reserved")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidState         = errors.New("invalid state")
	ErrAlreadyUsed          = errors.New("already used")
)
