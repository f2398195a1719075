// Package apperr defines the domain errors shared by the engagement, catalog
// and content services. HTTP handlers translate them into status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("you cannot follow yourself")

	// ErrAuthRequired is returned for mutating or owner-scoped calls made anonymously.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidInput marks request payloads that failed validation.
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError reports a referenced book, chapter or user that does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// NotFound builds a *NotFoundError.
func NotFound(resource string, id uint) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// PermissionError reports an attempt to act on another user's resource.
type PermissionError struct {
	Action   string
	Resource string
	ID       uint
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("you do not have permission to %s %s %d", e.Action, e.Resource, e.ID)
}

// Forbidden builds a *PermissionError.
func Forbidden(action, resource string, id uint) error {
	return &PermissionError{Action: action, Resource: resource, ID: id}
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsPermission reports whether err wraps a *PermissionError.
func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// Invalid wraps a validation message with ErrInvalidInput.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
