// Package apperrors defines the error taxonomy shared by all workflows.
// Callers branch on the error kind instead of matching message substrings.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so transport layers can map it to a response.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication"
	KindNotFound       Kind = "not_found"
	KindConfiguration  Kind = "configuration"
	KindInternal       Kind = "internal"
)

// Error is a kind-tagged error. It optionally wraps an underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed or missing input.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Authentication reports a credential mismatch. The message must stay
// generic so callers cannot tell which check failed.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// NotFound reports a referenced entity that does not exist.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Configuration reports a deployment misconfiguration. Not recoverable
// per-request.
func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// Wrap tags an underlying error with a kind and context message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain. Errors that carry no kind
// are treated as internal failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
