package catalog

import (
	"errors"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrPlaceNotFound = errors.New("place not found")
	ErrInvalidRange  = errors.New("invalid date range")
)
