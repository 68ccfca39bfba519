// Package errors maps application failures onto HTTP status codes and the
// JSON error envelope returned by every endpoint.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is the category of an error
type ErrorType string

const (
	TypeValidation   ErrorType = "validation"
	TypeUnauthorized ErrorType = "unauthorized"
	TypeNotFound     ErrorType = "not_found"
	TypeConflict     ErrorType = "conflict"
	TypeInternal     ErrorType = "internal"
	TypeExternal     ErrorType = "external"
)

// Error is a categorized error with a client-facing message
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Fields  map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status code for the error type
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithField attaches a log field (chainable). Fields are never sent to clients.
func (e *Error) WithField(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// WithCause records the underlying error (chainable)
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// Response is the JSON envelope sent to clients
type Response struct {
	Error string `json:"error"`
}

// ToResponse converts the error to its JSON envelope
func (e *Error) ToResponse() Response {
	return Response{Error: e.Message}
}

func ValidationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

func UnauthorizedError(message string) *Error {
	return &Error{Type: TypeUnauthorized, Message: message}
}

func NotFoundError(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

func ConflictError(message string) *Error {
	return &Error{Type: TypeConflict, Message: message}
}

func InternalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

func ExternalError(message string, cause error) *Error {
	return &Error{Type: TypeExternal, Message: message, Cause: cause}
}

// AsStructuredError returns err as *Error, wrapping unknown errors as internal.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return InternalError(err.Error(), err)
}
