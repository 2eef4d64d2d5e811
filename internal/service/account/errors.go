package account

import (
	"errors"
)

var (
	ErrUserNameRequired   = errors.New("user name is required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUserExists         = errors.New("user name or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)
