package admin

import (
	"errors"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrPlaceNotFound = errors.New("place not found")
)
