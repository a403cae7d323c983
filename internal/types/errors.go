package types

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a lookup matched nothing. Callers decide whether
// that is fatal or just an empty result.
var ErrNotFound = errors.New("not found")

// ValidationError is returned when a model field violates its constraint.
// It always names the offending field so upstream callers (and the LLM layer
// feeding us JSON) can correct the payload.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Constraint)
}

func NewValidationError(field, constraint string) *ValidationError {
	return &ValidationError{Field: field, Constraint: constraint}
}

// ProviderError wraps a failure from an external place/pricing provider.
// These never escape the search/details boundary; services convert them into
// error-status envelopes instead.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed (HTTP %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s request failed: %s", e.Provider, e.Message)
}
