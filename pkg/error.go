package pkg

import (
	"fmt"
	"log/slog"
	"strings"
)

// Error is an error with a fixed message, an optional wrapped cause, and
// attributes for structured logging.
//
// Sentinel errors are declared once with [NewError]. Values derived from a
// sentinel with [Error.With] or [Error.Wrap] keep its identity, so
// [errors.Is] matches them against the sentinel while the wrapped cause
// remains reachable through [Error.Unwrap].
type Error struct {
	kind  *Error
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns a new sentinel error with the given message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is derived from the same sentinel as e.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.kind == e.kind
}

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Attrs returns a copy of the attributes attached to e.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// Wrapf creates a new Error wrapping a formatted error message.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

var (
	// ErrInvalidDescriptor is returned when the packaging descriptor fails
	// validation.
	ErrInvalidDescriptor = NewError("invalid packaging descriptor")

	// ErrInvalidFormat is returned when an unsupported output format is
	// requested.
	ErrInvalidFormat = NewError("invalid format")

	// ErrUnsupportedRuntime is returned when a runtime version does not
	// satisfy the descriptor's runtime constraint.
	ErrUnsupportedRuntime = NewError("unsupported runtime")
)
