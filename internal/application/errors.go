package application

import (
	"errors"
	"fmt"
)

// Kind classifies failures returned by the account service.
type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindDuplicateEmail     Kind = "DUPLICATE_EMAIL"
	KindDuplicateNickname  Kind = "DUPLICATE_NICKNAME"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindNoLocalPassword    Kind = "NO_LOCAL_PASSWORD"
	KindInternal           Kind = "INTERNAL_ERROR"
)

// Error is a domain failure with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrDuplicateEmail)
// holds regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrDuplicateEmail     = &Error{Kind: KindDuplicateEmail, Message: "email is already in use"}
	ErrDuplicateNickname  = &Error{Kind: KindDuplicateNickname, Message: "nickname is already in use"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "invalid email or password"}
	ErrNoLocalPassword    = &Error{Kind: KindNoLocalPassword, Message: "account has no local login password"}
)

// NewValidationError is used by the API layer for rejected request bodies.
func NewValidationError(msg string, err error) *Error {
	return &Error{Kind: KindValidation, Message: msg, Err: err}
}

func internalError(op string, err error) *Error {
	return &Error{Kind: KindInternal, Message: op + " failed", Err: err}
}

// KindOf returns the kind of err, KindInternal for anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message carried by err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}
