package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrStorage            = errors.New("storage failure")
	ErrNotFound           = errors.New("not found")
	ErrNotConfirmed       = errors.New("action not confirmed")
	ErrAlreadySignedIn    = errors.New("already signed in")

	// advancing the scheduling flow without the required selection
	ErrIncompleteSelection = fmt.Errorf("%w: incomplete selection", ErrValidation)
)

// ValidationError describes one rejected form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
