// Package portalerr classifies failures of the grading and quiz engines so
// HTTP handlers and retry loops can react without string matching.
package portalerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: missing or malformed required input. Rejected before
	// any store access.
	KindValidation
	// KindAuth: missing or insufficient credentials for the operation.
	KindAuth
	// KindNotFound: a referenced entity (attempt, quiz, student) is absent.
	KindNotFound
	// KindTransient: store timeout or connection failure; safe to retry.
	KindTransient
	// KindIntegrity: a multi-step store operation was left inconsistent.
	// The whole operation must be retried from the start.
	KindIntegrity
)

type Error struct {
	Kind   Kind
	Entity string // optional: which entity the error is about
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Entity != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", kindLabel(e.Kind), e.Entity, e.Err)
	case e.Entity != "":
		return fmt.Sprintf("%s: %s", kindLabel(e.Kind), e.Entity)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", kindLabel(e.Kind), e.Err)
	}
	return kindLabel(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func kindLabel(k Kind) string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not found"
	case KindTransient:
		return "transient store error"
	case KindIntegrity:
		return "integrity"
	}
	return "error"
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Err: errors.New(msg)}
}

func Auth(msg string) error {
	return &Error{Kind: KindAuth, Err: errors.New(msg)}
}

func NotFound(entity string) error {
	return &Error{Kind: KindNotFound, Entity: entity}
}

func Transient(err error) error {
	return &Error{Kind: KindTransient, Err: err}
}

func Integrity(err error) error {
	return &Error{Kind: KindIntegrity, Err: err}
}

// IsKind reports whether any error in err's chain carries the given kind.
func IsKind(err error, k Kind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == k
}

// HTTPStatus maps an error chain onto the status code the API surface
// promises: 400 validation, 401 auth, 404 missing entity, 500 otherwise.
func HTTPStatus(err error) int {
	var pe *Error
	if !errors.As(err, &pe) {
		return http.StatusInternalServerError
	}
	switch pe.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
