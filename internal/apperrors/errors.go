package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a malformed form field, such as an
// unparseable quantity or mismatched line-item arrays.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RenderError wraps a failure to compose or serialize the PDF document.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// PersistenceError wraps a failure to insert or read the invoice row.
// A persistence failure during issuance blocks notification so that
// every emailed invoice has a durable record.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotificationError wraps a failure to deliver an invoice email. The
// invoice row is already durable when this is raised; there is no
// rollback.
type NotificationError struct {
	Recipient string
	Err       error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification to %s failed: %v", e.Recipient, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
