/*
Package shared - shared domain error definitions

Rules:
1. Sentinel errors are declared here and matched with errors.Is().
2. DomainError captures the stack when it is created and formats it lazily.
3. Domain errors carry no transport concepts such as HTTP status codes.

Stack strategy:
- captured inside the constructor, at the point of failure
- formatted only when a log line asks for it (Stack())
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrNotFound lookup by key found no row
	ErrNotFound = errors.New("not found")

	// ErrConflict uniqueness constraint violated
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput malformed identifier or missing required field
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransient connection or timeout failure of the backing store
	ErrTransient = errors.New("transient store failure")
)

// ============================================================================
// Domain error
// ============================================================================

// DomainError structured error with business context and creation-site stack
type DomainError struct {
	// Err sentinel used by errors.Is()
	Err error

	// Entity name of the entity involved ("customer", "invoice", ...)
	Entity string

	// Message human readable description
	Message string

	// Field optional field name for validation errors
	Field string

	// Cause optional underlying driver error
	Cause error

	stack []uintptr
}

// Error implements error
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As
func (e *DomainError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// Stack formats the captured frames on demand
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// ============================================================================
// Stack helpers
// ============================================================================

// CaptureStack records the current call stack.
// skip is usually 3: Callers, CaptureStack, NewXxxError.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders frames as "file:line function", skipping runtime frames.
// At most 10 frames are returned.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Constructors
// ============================================================================

// NewNotFoundError creates a not-found error for entity
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a conflict error, cause may be nil
func NewConflictError(entity, message string, cause error) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		Cause:   cause,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a validation error for a single field
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewTransientError wraps a connection or timeout failure
func NewTransientError(entity string, cause error) error {
	return &DomainError{
		Err:     ErrTransient,
		Entity:  entity,
		Message: entity + " store unavailable",
		Cause:   cause,
		stack:   CaptureStack(3),
	}
}

// IsNotFound reports whether err is a not-found outcome
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ============================================================================
// Stacker
// ============================================================================

// Stacker is implemented by errors that carry a stack, used by the api layer
type Stacker interface {
	Stack() []string
}
