package domain

import (
	"errors"
	"fmt"
)

// Cross-cutting error kinds. Handlers translate these into the API error
// envelope; the calculator folds SourceErrors into dataSourceErrors instead
// of failing the whole computation.
var (
	// ErrNotConnected means no credential exists at all for a required
	// external service. Distinct from a transient remote failure.
	ErrNotConnected = errors.New("external service is not connected")

	// ErrStaleObject means an external record update hit a concurrent
	// modification conflict; the client must refetch and retry.
	ErrStaleObject = errors.New("record was modified concurrently")

	// ErrNotFound means a referenced entity is absent
	ErrNotFound = errors.New("entity not found")
)

// SourceError is a transient failure of one specific external data source.
// Callers substitute an empty result set for the source and surface the
// error alongside otherwise-successful results.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("data source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError wraps a transient source failure
func NewSourceError(source string, err error) *SourceError {
	return &SourceError{Source: source, Err: err}
}

// AsSourceError unwraps err into a SourceError when possible
func AsSourceError(err error) (*SourceError, bool) {
	var sourceErr *SourceError
	if errors.As(err, &sourceErr) {
		return sourceErr, true
	}
	return nil, false
}

// ValidationError is a malformed/missing request input; never retried
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidationError builds a ValidationError for one request field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
