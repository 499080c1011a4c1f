package docstore

import (
	"errors"
	"fmt"
)

// Driver-level errors
var (
	ErrNotFound        = errors.New("document not found")
	ErrConflict        = errors.New("document with this id already exists")
	ErrUniqueViolation = errors.New("unique constraint violated")
)

// TransientError marks a failure that is expected to succeed on retry,
// such as throttling, timeouts and dropped connections.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient store failure during %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient wraps err as a TransientError for op
func Transient(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}

// IsTransient reports whether err is worth retrying
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
