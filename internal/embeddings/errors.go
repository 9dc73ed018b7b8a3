package embeddings

import (
	"errors"
	"fmt"
)

// TransientError marks an embedding failure that is worth retrying:
// network errors, rate limits, upstream 5xx responses.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient embedding error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError marks an embedding failure that retrying cannot fix:
// malformed input, auth failures, dimension mismatches.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("permanent embedding error: %v", e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

// Transient wraps err as a TransientError.
func Transient(err error) error {
	return &TransientError{Err: err}
}

// Permanent wraps err as a PermanentError.
func Permanent(err error) error {
	return &PermanentError{Err: err}
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// classifyHTTPStatus wraps err according to the upstream HTTP status code.
// 429 and 5xx are transient; everything else is permanent.
func classifyHTTPStatus(status int, err error) error {
	if status == 429 || status >= 500 {
		return Transient(err)
	}
	return Permanent(err)
}
