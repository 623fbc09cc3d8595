// Package apperr defines the error kinds every request can end in and the
// HTTP status each one maps to.
package apperr

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation_error"
	KindConstraint   Kind = "constraint_violation"
	KindInternal     Kind = "internal_error"
)

// Error is a classified failure. Fields is only populated for KindValidation.
type Error struct {
	Kind   Kind
	Detail string
	Fields FieldErrors
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if len(e.Fields) > 0 {
		msg += " (" + e.Fields.String() + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConstraint:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FieldErrors maps a payload field name to every message raised against it.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f FieldErrors) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(f[k], "; "))
	}
	return strings.Join(parts, ", ")
}

func Unauthorized(detail string) error {
	return &Error{Kind: KindUnauthorized, Detail: detail}
}

func Forbidden(detail string) error {
	return &Error{Kind: KindForbidden, Detail: detail}
}

func NotFound(detail string) error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

// Validation wraps a non-empty field map. A nil or empty map yields nil so
// callers can return the result of an exhaustive check directly.
func Validation(fields FieldErrors) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Kind: KindValidation, Detail: "invalid input", Fields: fields}
}

// Field is shorthand for a single-field validation failure.
func Field(field, msg string) error {
	return Validation(FieldErrors{field: {msg}})
}

func Constraint(detail string, err error) error {
	return &Error{Kind: KindConstraint, Detail: detail, Err: err}
}

func Internal(err error) error {
	return &Error{Kind: KindInternal, Err: err}
}

// As extracts the classified error from err; unclassified errors come back
// as KindInternal.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Err: err}
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
