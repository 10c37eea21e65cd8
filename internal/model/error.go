package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the closed set of error categories a caller can distinguish
// without string matching (spec §7).
type Kind uint8

const (
	KindNone Kind = iota
	KindMissingInput
	KindUnsupportedVersion
	KindUnsupportedResultType
	KindPrimitiveFailure
	KindMalformedState
	KindFormatStructure
	KindFormatMissing
	KindFormatIllegal
	KindUserSecretMismatch
	KindInternal
)

var kindNames = [...]string{
	"none", "missing_input", "unsupported_version", "unsupported_result_type",
	"primitive_failure", "malformed_state", "format_structure", "format_missing",
	"format_illegal", "user_secret_mismatch", "internal",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Error wraps a Kind with a message and, optionally, an underlying cause
// captured via github.com/pkg/errors so the stack at the point of failure
// survives across package boundaries.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg, cause: errors.New(msg)}
}

func WrapError(kind Kind, msg string, cause error) *Error {
	return &Error{kind: kind, msg: msg, cause: errors.Wrap(cause, msg)}
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("%s: %s", e.kind, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *Error) Unwrap() error { return e.cause }

// Cause returns the root cause, unwrapping any github.com/pkg/errors chain.
func (e *Error) Cause() error { return errors.Cause(e.cause) }

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error, and KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}
