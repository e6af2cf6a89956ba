package ingest

import (
	"errors"
	"fmt"
)

// Kind classifies load failures.
type Kind string

const (
	// KindInvalidReference marks a link that points outside the declared
	// nodes or connects a node to itself.
	KindInvalidReference Kind = "INVALID_REFERENCE"

	// KindMalformedInput marks text that does not follow the format: a
	// non-numeric token, a missing coordinate, a non-finite value.
	KindMalformedInput Kind = "MALFORMED_INPUT"
)

// Error is a load failure. No graph is ever returned alongside one.
type Error struct {
	Kind    Kind
	Line    int // 1-based source line, 0 when unknown
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, line int, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether err is a load error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf extracts the kind from err, or "" if err is not a load error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
