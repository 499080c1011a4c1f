package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidRecord    = errors.New("invalid user record")
	ErrUserNotFound     = errors.New("user not found")
	ErrMultipleFound    = errors.New("multiple users found")
	ErrDuplicateEmail   = errors.New("a user with this email already exists")
	ErrConflictingEmail = errors.New("email belongs to another user")
	ErrStoreUnavailable = errors.New("document store unavailable")
	ErrCancelled        = errors.New("operation cancelled")
	ErrEmptyQuery       = errors.New("query must not be empty")
	ErrEmailRequired    = errors.New("email is required")
	ErrCorruptRecord    = errors.New("stored user record is invalid")
)

// InvalidRecordError identifies the field and rule a user record violated.
type InvalidRecordError struct {
	Field  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid user record: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidRecord
func (e *InvalidRecordError) Unwrap() error {
	return ErrInvalidRecord
}

func invalid(field, reason string) error {
	return &InvalidRecordError{Field: field, Reason: reason}
}

// IsBusinessError reports whether err is a caller-visible data error that must never be retried.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidRecord) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrMultipleFound) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrConflictingEmail) ||
		errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrCorruptRecord)
}
