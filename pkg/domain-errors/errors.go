// Package domainerrors provides coded domain errors shared by all services.
//
// Services translate infrastructure sentinels (pkg/platform/sentinel) into these
// coded errors at their boundary; transport layers translate codes into HTTP
// statuses. Handlers never inspect raw store errors.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for boundary handling.
type Code string

const (
	// CodeBadRequest marks a malformed or semantically invalid request.
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput marks a value rejected at a trust boundary (IDs, enums).
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks a missing entity.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a uniqueness or state conflict.
	CodeConflict Code = "conflict"
	// CodeDataIntegrity marks an unresolvable seat/ticket/category cross-reference.
	// Fatal for the affected computation; retrying does not help.
	CodeDataIntegrity Code = "data_integrity"
	// CodeTransient marks a network-like failure of a mutating operation.
	// State is left unchanged; the caller may retry.
	CodeTransient Code = "transient"
	// CodeInvalidGeometry marks an element lacking required numeric position data.
	// The affected element is skipped rather than failing the whole render.
	CodeInvalidGeometry Code = "invalid_geometry"
	// CodeInvalidState marks an operation invoked without a required precondition.
	// Programmer error; raised loudly, never swallowed.
	CodeInvalidState Code = "invalid_state"
	// CodeInternal marks an unexpected internal failure.
	CodeInternal Code = "internal"
)

// DomainError carries a code, a human-readable message, and an optional cause.
type DomainError struct {
	Code    Code
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New creates a coded domain error.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Newf creates a coded domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &DomainError{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or any error it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of err, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain error code to an HTTP status code.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvalidState:
		return http.StatusConflict
	case CodeDataIntegrity:
		return http.StatusUnprocessableEntity
	case CodeTransient:
		return http.StatusBadGateway
	case CodeInvalidGeometry:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
