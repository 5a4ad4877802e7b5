// Package apperr defines the closed set of error kinds the ledger reports.
package apperr

import (
	"errors"
	"fmt"
	"maps"
)

// Kind classifies an error for callers and for the transport layer.
type Kind string

const (
	KindInternal        Kind = "internal"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindAuthorization   Kind = "authorization"
	KindConflict        Kind = "conflict"
	KindUnauthenticated Kind = "unauthenticated"
)

// Error is a kinded error with a human readable message and optional details.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any

	// base is the sentinel this error was derived from.
	base *Error
}

// New creates a new error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error      { return New(KindValidation, message) }
func NotFound(message string) *Error        { return New(KindNotFound, message) }
func Authorization(message string) *Error   { return New(KindAuthorization, message) }
func Conflict(message string) *Error        { return New(KindConflict, message) }
func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message) }

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is this error or the sentinel it was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || (e.base != nil && e.base == t)
}

// WithMessage returns a copy of e carrying a different message.
// The copy still matches e with errors.Is.
func (e *Error) WithMessage(format string, args ...any) *Error {
	c := e.derive()
	c.Message = fmt.Sprintf(format, args...)
	return c
}

// WithDetails returns a copy of e with extra structured details merged in.
func (e *Error) WithDetails(details map[string]any) *Error {
	c := e.derive()
	if c.Details == nil {
		c.Details = make(map[string]any, len(details))
	}
	maps.Copy(c.Details, details)
	return c
}

func (e *Error) derive() *Error {
	root := e
	if e.base != nil {
		root = e.base
	}
	return &Error{
		Kind:    e.Kind,
		Message: e.Message,
		Details: maps.Clone(e.Details),
		base:    root,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// DetailsOf returns the details attached to err, if any.
func DetailsOf(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
