package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when attempting to register an existing username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrAdminExists signals a bootstrap registration after an admin was already created.
	ErrAdminExists = errors.New("admin account already exists")
	// ErrUnauthorized indicates a missing, malformed or unverifiable capability.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates a verified identity lacking the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a malformed input value with field-level detail.
type ValidationError struct {
	Field    string
	Expected string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: expected %s", e.Field, e.Expected)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, expected string) error {
	return &ValidationError{Field: field, Expected: expected}
}
