// Package apperrors defines the error kinds returned by listing services and
// how each kind is surfaced over HTTP.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindAuthentication
	KindAuthorization
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a typed failure. Fields carries per-field detail for validation
// errors and is nil otherwise.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization never explains why the caller was refused.
func Authorization() *Error {
	return &Error{Kind: KindAuthorization, Message: "permission denied"}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func FieldValidation(field, problem string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "validation failed",
		Fields:  map[string]string{field: problem},
	}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: err}
}

// FromDB converts a datastore error. Missing rows become NotFound for the
// given resource and unique violations become validation errors.
func FromDB(err error, resource string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Validation(resource + " violates a unique constraint")
	}
	return Internal(err)
}

// KindOf returns the kind of err, treating untyped errors as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
