package cache

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
	"golang.org/x/xerrors"
)

// Code classifies a CacheError so callers can branch on failure kind without
// string-matching error messages.
type Code int

const (
	// ErrBuilderUnknown classifies a request for a builder the cache does not
	// track. No operation in this package returns it: the Lookup accessors
	// report a missing artifact through their bool result instead.
	ErrBuilderUnknown Code = iota

	// ErrBuilderDropped is returned when a weak builder reference can no longer be
	// upgraded, i.e. the builder it pointed to has been garbage collected by Go.
	ErrBuilderDropped

	// ErrCycleSuspected classifies a suspected dependency cycle. No operation in
	// this package returns it: the cache never checks for cycles (see raw.go),
	// and Locked leaves lock misuse to go-deadlock, which reports it itself.
	ErrCycleSuspected
)

func (c Code) String() string {
	switch c {
	case ErrBuilderUnknown:
		return "builder unknown"
	case ErrBuilderDropped:
		return "builder dropped"
	case ErrCycleSuspected:
		return "cycle suspected"
	default:
		return "unknown"
	}
}

// CacheError is the error type the cache itself produces, e.g. when a builder
// behind a weak blueprint can no longer be reached. Errors returned by a
// builder's Build are passed back to the caller unchanged, and programmer bugs
// (e.g. mismatched artifact types on an accessor) panic instead. It carries a
// Code for branching and a stack frame for diagnostics, mirroring the ComplexError pattern the rest of this
// module's ancestry uses for its own error types.
type CacheError struct {
	Code    Code
	Message string
	frame   xerrors.Frame
	cause   error
}

func newCacheError(code Code, message string) *CacheError {
	return &CacheError{
		Code:    code,
		Message: message,
		frame:   xerrors.Caller(1),
	}
}

func (e *CacheError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CacheError) Unwrap() error { return e.cause }

func (e *CacheError) Format(f fmt.State, verb rune) { xerrors.FormatError(e, f, verb) }

func (e *CacheError) FormatError(p xerrors.Printer) error {
	p.Print(e.Code, ": ", e.Message)
	e.frame.Format(p)
	return e.cause
}

// WrapError attaches a stack trace to err by wrapping it with go-errors/errors
// before it crosses an exported boundary, so panics and logged errors carry a
// useful trace.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, 1)
}
