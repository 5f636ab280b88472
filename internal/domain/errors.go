package domain

import (
	"errors"
	"fmt"
)

// ErrNotConfigured signals the missing generation API credential. Detected at
// startup; generation endpoints stay disabled while it holds.
var ErrNotConfigured = errors.New("generation provider is not configured")

// ErrBusy is returned when a new submission arrives while a generation is
// already in flight for the session.
var ErrBusy = errors.New("a generation is already in progress")

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// ValidationError reports a user-input precondition failure. Local and
// non-fatal: the interaction state is left unchanged. Key addresses the
// localized message catalog; Args feed its format verbs.
type ValidationError struct {
	Key  string
	Args []any
}

func (e *ValidationError) Error() string {
	if len(e.Args) == 0 {
		return e.Key
	}
	return fmt.Sprintf("%s %v", e.Key, e.Args)
}

// NewValidationError builds a ValidationError for a message key.
func NewValidationError(key string, args ...any) *ValidationError {
	return &ValidationError{Key: key, Args: args}
}

// ReadError wraps a failed image read/encode. The flow that triggered it
// reverts to its prior state so the user can retry without losing context.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return "image read failed: " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// GenerationError is the single opaque failure callers see from a generation
// operation. Op names the operation, Key the localized user-facing message;
// the underlying cause is carried for logging only and never shown verbatim.
type GenerationError struct {
	Op   string
	Key  string
	Args []any
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": generation failed"
}

func (e *GenerationError) Unwrap() error { return e.Err }

// CountMismatchError reports a question batch of the wrong size. It is folded
// into a GenerationError whose message embeds both counts.
type CountMismatchError struct {
	Expected int
	Observed int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("expected %d questions, got %d", e.Expected, e.Observed)
}

// ErrMalformedResponse marks a model reply that does not match the declared
// shape for the operation.
var ErrMalformedResponse = errors.New("malformed model response")
