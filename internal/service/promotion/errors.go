package promotion

import (
	"errors"
)

var (
	ErrRequestNotFound  = errors.New("provider request not found")
	ErrRequestPending   = errors.New("a provider request is already pending")
	ErrAlreadyProvider  = errors.New("user is already a service provider")
	ErrMissingDocuments = errors.New("national id front, back and holding photo are required")
	ErrUserNotFound     = errors.New("user not found")
)
