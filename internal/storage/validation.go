package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/risk-profiler/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrInvalidReport = errors.New("invalid report")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateReport rejects reports that were never finalized.
func validateReport(r model.ClientReport) error {
	if strings.TrimSpace(r.Timestamp) == "" {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidReport)
	}
	if r.Classification.FinalProfileName == "" {
		return fmt.Errorf("%w: missing profile", ErrInvalidReport)
	}
	if r.Gap.DesiredProfileName == "" {
		return fmt.Errorf("%w: missing desired profile", ErrInvalidReport)
	}
	if r.Gap.Justification == "" {
		return fmt.Errorf("%w: missing justification", ErrInvalidReport)
	}
	return nil
}
