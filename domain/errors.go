package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an expected business outcome. Anything that is not a
// *Error is treated as an infrastructure fault.
type Kind string

const (
	KindNotFound    Kind = "NOT_FOUND"
	KindConflict    Kind = "CONFLICT"
	KindNotPresent  Kind = "NOT_PRESENT"
	KindValidation  Kind = "VALIDATION"
	KindSelfFollow  Kind = "SELF_FOLLOW"
	KindAuthFailure Kind = "AUTH_FAILURE"
	KindForbidden   Kind = "FORBIDDEN"
)

func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindNotPresent, KindValidation, KindSelfFollow:
		return http.StatusBadRequest
	case KindAuthFailure:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrConflict)
// holds for every conflict.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewValidationError builds a validation error with per-field messages.
func NewValidationError(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

var (
	ErrNotFound    = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict    = &Error{Kind: KindConflict, Message: "already exists"}
	ErrNotPresent  = &Error{Kind: KindNotPresent, Message: "not present"}
	ErrValidation  = &Error{Kind: KindValidation, Message: "validation error"}
	ErrSelfFollow  = &Error{Kind: KindSelfFollow, Message: "self follow rejected"}
	ErrAuthFailure = &Error{Kind: KindAuthFailure, Message: "authentication failed"}
	ErrForbidden   = &Error{Kind: KindForbidden, Message: "forbidden"}
)
