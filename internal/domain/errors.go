package domain

import (
	"errors"
	"fmt"
)

// Common domain errors surfaced by catalog, session, and submission
// operations. Hosts distinguish recoverable rater mistakes (missing
// username, nothing rated) from configuration and data faults.
var (
	// ErrEmptyCatalog indicates that a catalog was built with no dimensions.
	ErrEmptyCatalog = errors.New("catalog has no dimensions")

	// ErrDimensionNotFound indicates a lookup for a dimension name that is
	// not in the catalog.
	ErrDimensionNotFound = errors.New("dimension not found")

	// ErrNoExamples indicates that a source produced an empty example
	// sequence. A rating run without examples cannot proceed.
	ErrNoExamples = errors.New("no examples loaded")

	// ErrIndexOutOfRange indicates an example index outside the corpus.
	ErrIndexOutOfRange = errors.New("example index out of range")

	// ErrRatingOutOfRange indicates a rating value outside the bounds
	// declared by its dimension.
	ErrRatingOutOfRange = errors.New("rating outside dimension range")

	// ErrMissingUsername indicates a submission attempt with an empty or
	// whitespace-only username. The rater can correct this and retry.
	ErrMissingUsername = errors.New("username is required")

	// ErrEmptySubmission indicates a submission attempt in which no example
	// carries at least one rating. The rater can rate and retry.
	ErrEmptySubmission = errors.New("no rated examples to submit")
)

// CatalogError describes a malformed dimension discovered while building
// a catalog. Catalog faults are configuration errors: the run aborts
// before any rating starts.
type CatalogError struct {
	// Dimension is the name of the offending dimension, if known.
	Dimension string

	// Reason describes what made the dimension invalid.
	Reason string
}

// Error implements the error interface for CatalogError.
func (e *CatalogError) Error() string {
	if e.Dimension == "" {
		return fmt.Sprintf("catalog error: %s", e.Reason)
	}
	return fmt.Sprintf("catalog error: dimension=%q, %s", e.Dimension, e.Reason)
}

// NewCatalogError creates a new CatalogError with the given details.
func NewCatalogError(dimension, reason string) *CatalogError {
	return &CatalogError{Dimension: dimension, Reason: reason}
}

// SessionError represents an error that occurred during a session
// operation. It provides context about which example and operation
// caused the error.
type SessionError struct {
	// Operation describes what operation was being performed when the
	// error occurred.
	Operation string

	// Index is the example index involved in the failed operation.
	Index int

	// Err is the underlying error that caused the operation to fail.
	Err error
}

// Error implements the error interface for SessionError.
func (e *SessionError) Error() string {
	return fmt.Sprintf("session error: operation=%s, example=%d, err=%v", e.Operation, e.Index, e.Err)
}

// Unwrap returns the underlying error, supporting errors.Is and errors.As.
func (e *SessionError) Unwrap() error { return e.Err }

// NewSessionError creates a new SessionError with the given details.
func NewSessionError(operation string, index int, err error) *SessionError {
	return &SessionError{
		Operation: operation,
		Index:     index,
		Err:       err,
	}
}
