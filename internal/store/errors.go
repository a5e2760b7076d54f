package store

import (
	"errors"
	"fmt"
)

// Error is a persistence-layer error. Services translate these into domain
// errors; callers match them with errors.Is against the sentinels below.
type Error struct {
	Code    string // stable identifier, e.g. "not_found"
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches by Code so sentinels survive WithMessage and WithCause.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithMessage returns a copy with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg, Err: e.Err}
}

// WithCause returns a copy wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Err: err}
}

// Sentinel errors.
var (
	ErrNotFound = &Error{
		Code:    "not_found",
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Code:    "already_exists",
		Message: "resource already exists",
	}
)
