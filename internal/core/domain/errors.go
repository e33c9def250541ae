package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProjectNotFound    = errors.New("project not found")
	ErrForbidden          = errors.New("access forbidden")
)

// invalid wraps ErrInvalidArgument with a field-level reason.
func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, reason)
}
