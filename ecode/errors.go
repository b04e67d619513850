package ecode

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the HTTP boundary can map it to a status
// code without inspecting messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the typed error returned by services and repositories. The
// boundary is the only place allowed to turn it into a transport response.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation reports malformed or missing input.
func Validation(message string) *Error {
	return newError(KindValidation, message)
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *Error {
	return newError(KindConflict, message)
}

// Authentication reports a missing, invalid or expired credential.
func Authentication(message string) *Error {
	return newError(KindAuthentication, message)
}

// Authorization reports an authenticated but not permitted operation.
func Authorization(message string) *Error {
	return newError(KindAuthorization, message)
}

// NotFound reports an absent resource.
func NotFound(message string) *Error {
	return newError(KindNotFound, message)
}

// Internal wraps an unexpected store or runtime failure. The wrapped cause
// is for logs only and never reaches the client.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

// KindOf extracts the Kind from an error chain, KindUnknown if untyped.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether the error chain carries a not-found kind.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsConflict reports whether the error chain carries a conflict kind.
func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

// Field message helpers.

// FieldIsRequired returns a "<field> is required" message.
func FieldIsRequired(k string) string {
	return fmt.Sprintf("%s is required", k)
}

// FieldIsInvalid returns a "<field> is invalid" message.
func FieldIsInvalid(k string) string {
	return fmt.Sprintf("%s is invalid", k)
}

// AlreadyExist returns a "<subject> already exists" message.
func AlreadyExist(k string) string {
	return fmt.Sprintf("%s already exists", k)
}

// NotExist returns a "<subject> not found" message.
func NotExist(k string) string {
	return fmt.Sprintf("%s not found", k)
}
