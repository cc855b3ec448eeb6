// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Scoring errors.
	ErrInvalidAnswer = errors.New("invalid answer")
	ErrInvalidScore  = errors.New("invalid score")

	// Workflow errors.
	ErrUnknownProfile        = errors.New("unknown risk profile")
	ErrJustificationRequired = errors.New("justification required")
	ErrNotFinalized          = errors.New("report not finalized")
	ErrInvalidTransition     = errors.New("invalid workflow transition")

	// Storage errors.
	ErrHistoryStorage = errors.New("history storage failed")

	// Export errors.
	ErrExportFailed = errors.New("export failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
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
