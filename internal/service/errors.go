package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected before any state was changed
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a lookup of an unknown ID
	ErrNotFound = errors.New("not found")
	// ErrNoProfile marks an operation that needs a configured profile
	ErrNoProfile = errors.New("profile not configured")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
