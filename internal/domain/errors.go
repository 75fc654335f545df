package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	// Document control taxonomy.
	ErrPermissionDenied      = errors.New("permission denied")
	ErrInvalidTransition     = errors.New("invalid transition")
	ErrUnknownWorkflowDomain = errors.New("unknown workflow domain")
	ErrSequenceConflict      = errors.New("sequence conflict")
	ErrReservationExpired    = errors.New("reservation expired")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// TransitionError describes a rejected state change with enough context to
// render a message to the user. It unwraps to ErrPermissionDenied or
// ErrInvalidTransition.
type TransitionError struct {
	EntityType string
	EntityID   string
	Stage      string
	Action     string
	Role       string
	Err        error
}

func (e *TransitionError) Error() string {
	subject := e.EntityType
	if e.EntityID != "" {
		subject = e.EntityType + " " + e.EntityID
	}
	if e.Role != "" {
		return fmt.Sprintf("%s: action %q by role %q at stage %q: %v", subject, e.Action, e.Role, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: action %q at stage %q: %v", subject, e.Action, e.Stage, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }
