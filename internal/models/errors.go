package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist or is owned by a
	// different user. The two cases are indistinguishable to callers.
	ErrNotFound = errors.New("not found")

	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidAuthToken   = errors.New("invalid token")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("Invalid field %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("Missing required field: %s", e.Field)
}
