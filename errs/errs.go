// Package errs defines the structured error taxonomy shared across the
// atomic-environment toolkit (state, cna, metric, similarity, pattern
// persistence, geometry readers, and reporters).
//
// Every exported error constructed here carries a Kind so callers can
// branch on failure class without string-matching, while still being
// usable with errors.Is/errors.As against the wrapped sentinel.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure the way spec.md §7 enumerates them.
type Kind int

const (
	// Unknown is the zero value; it should never appear in a returned Error.
	Unknown Kind = iota
	// InvalidInput marks malformed configuration, pattern syntax, or file format.
	InvalidInput
	// NotFound marks a lookup miss (pattern key, pattern fingerprint with no
	// unknown fallback configured).
	NotFound
	// ResourceExhausted marks a request that would exceed a resource ceiling
	// (the 16 GiB distance-matrix memory limit).
	ResourceExhausted
	// Unsupported marks a per-pair similarity request with K > 12; recovered
	// locally by the caller, never fatal for the whole run.
	Unsupported
	// Io marks a failure to read or write a file.
	Io
	// InvalidState marks a programmer-visible invariant violation.
	InvalidState
)

// String renders a Kind for logs and error messages.
func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case NotFound:
		return "not_found"
	case ResourceExhausted:
		return "resource_exhausted"
	case Unsupported:
		return "unsupported"
	case Io:
		return "io"
	case InvalidState:
		return "invalid_state"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with an operation label and a Kind.
type Error struct {
	Kind Kind   // failure class
	Op   string // operation that failed, e.g. "state.Build"
	Err  error  // underlying sentinel or wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}

	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the wrapped error to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an Error for op/kind wrapping err.
func New(op string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the Kind of err if it (or something it wraps) is an *Error.
// Unknown is returned for any other error, including nil.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return Unknown
}
