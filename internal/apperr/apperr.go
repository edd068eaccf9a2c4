// Package apperr classifies failures once, at the boundary where they
// occur, so callers map them to HTTP statuses without inspecting
// store-native error values.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota // bad shape, range or format
	KindConflict               // duplicate email
	KindNotFound               // unknown id or no record matched
	KindMalformedID            // identifier fails format check
	KindStore                  // underlying store unreachable or rejected
)

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

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause while keeping the classified message as the
// surfaced text.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func Validation(message string) *Error  { return New(KindValidation, message) }
func Conflict(message string) *Error    { return New(KindConflict, message) }
func NotFound(message string) *Error    { return New(KindNotFound, message) }
func MalformedID(message string) *Error { return New(KindMalformedID, message) }

func Store(cause error) *Error {
	msg := "store operation failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindStore, Message: msg, cause: cause}
}

// KindOf extracts the classification; unclassified errors count as
// store faults.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

// StatusOf maps a classified error to its HTTP status.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict, KindMalformedID:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
