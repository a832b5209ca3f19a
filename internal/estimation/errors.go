package estimation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is returned when an identifier does not resolve in the rate table.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrInvalidInput is returned when a numeric request field is negative or not a number.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidConfiguration is returned when the rate table itself violates an invariant.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// SelectionError names the identifier that failed to resolve.
type SelectionError struct {
	Kind string // "project type", "complexity", "feature", "roi category"
	ID   string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid selection: unknown %s %q", e.Kind, e.ID)
}

func (e *SelectionError) Unwrap() error { return ErrInvalidSelection }

// InputError names the request field that was rejected.
type InputError struct {
	Field string
	Value float64
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s must be a non-negative number, got %v", e.Field, e.Value)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
