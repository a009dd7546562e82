// Package common provides shared logging and error types used across the
// growthviz pipeline.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Ingestion errors.
	ErrMissingColumn = errors.New("required column missing")
	ErrBadNumeric    = errors.New("non-numeric value")
	ErrEmptyFile     = errors.New("file contains no data rows")

	// Transform errors.
	ErrUnknownMode    = errors.New("unknown mode")
	ErrUnknownMeasure = errors.New("unknown measurement type")
	ErrNoObservations = errors.New("no observations to process")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the analyst with
// a friendly message, wrapping the underlying cause.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
