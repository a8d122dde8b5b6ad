package ports

import (
	"errors"
	"fmt"
)

// Common infrastructure errors surfaced by example sources and ratings
// sinks.
var (
	// ErrSinkUnavailable indicates that the ratings sink cannot be
	// reached or is refusing work.
	ErrSinkUnavailable = errors.New("sink unavailable")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrUnauthorized indicates that the sink rejected the caller's
	// credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidRecord indicates that the sink rejected the record
	// itself. Retrying the same record cannot succeed.
	ErrInvalidRecord = errors.New("invalid record")
)

// SourceError represents a failure while loading examples. Loading
// faults are fatal for a rating run: without data there is nothing to
// rate.
type SourceError struct {
	// Source identifies which example source failed.
	Source string

	// Path is the file or location involved, if any.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for SourceError.
func (e *SourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("source error: source=%s, err=%v", e.Source, e.Err)
	}
	return fmt.Sprintf("source error: source=%s, path=%s, err=%v", e.Source, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error { return e.Err }

// NewSourceError creates a new SourceError with the given details.
func NewSourceError(source, path string, err error) *SourceError {
	return &SourceError{
		Source: source,
		Path:   path,
		Err:    err,
	}
}

// PersistError represents a failure while storing a submission. The
// submission itself validated cleanly; the fault lies with the sink or
// the path to it, so the rater's work is preserved for another attempt.
type PersistError struct {
	// Sink identifies which ratings sink failed.
	Sink string

	// Key is the submission key of the record that could not be stored.
	Key string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for PersistError.
func (e *PersistError) Error() string {
	return fmt.Sprintf("persist error: sink=%s, key=%s, err=%v", e.Sink, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error { return e.Err }

// IsRetryable returns true if the failure is transient and storing the
// same record again may succeed.
func (e *PersistError) IsRetryable() bool {
	// Only availability and deadline faults are retryable; credential
	// and record faults are not.
	return errors.Is(e.Err, ErrSinkUnavailable) || errors.Is(e.Err, ErrTimeout)
}

// NewPersistError creates a new PersistError with the given details.
func NewPersistError(sink, key string, err error) *PersistError {
	return &PersistError{
		Sink: sink,
		Key:  key,
		Err:  err,
	}
}
