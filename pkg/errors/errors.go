package errors

import (
	"errors"
	"fmt"
	"net/http"

	"erp/domain/shared"
)

// ErrorCode is the machine readable error code returned to clients
type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeUnavailable    ErrorCode = "SERVICE_UNAVAILABLE"
)

// AppError is an error annotated for the transport layer
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode maps the code to an HTTP status
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Is checks the code of an AppError anywhere in the chain
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError maps domain sentinels to transport codes.
// Unknown errors become internal errors with a generic message so that
// driver details never reach the client.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		switch {
		case errors.Is(domainErr.Err, shared.ErrNotFound):
			return Wrap(err, CodeNotFound, domainErr.Message)
		case errors.Is(domainErr.Err, shared.ErrConflict):
			return Wrap(err, CodeConflict, domainErr.Message)
		case errors.Is(domainErr.Err, shared.ErrInvalidInput):
			return &AppError{Code: CodeValidation, Message: domainErr.Message, Field: domainErr.Field, Err: err}
		case errors.Is(domainErr.Err, shared.ErrTransient):
			return Wrap(err, CodeUnavailable, domainErr.Message)
		}
	}

	switch {
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, "not found")
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, "conflict")
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, "invalid input")
	case errors.Is(err, shared.ErrTransient):
		return Wrap(err, CodeUnavailable, "service temporarily unavailable")
	}
	return Wrap(err, CodeInternal, "internal server error")
}
