// Package errors provides the consolidated error definitions for tsmap.
//
// This package provides:
// - Sentinel errors for all error conditions
// - Error category checking functions
// - Error wrapping utilities
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrDuplicateTimestamp is returned by Add when an entry already exists
	// at the given timestamp. The store is left unchanged.
	ErrDuplicateTimestamp = errors.New("duplicate timestamp")

	// ErrUnknownBackend is returned by the factory when asked for a backend
	// kind it does not know about.
	ErrUnknownBackend = errors.New("unknown backend")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingField  = errors.New("missing required field")
)

// ============================================================================
// Helper functions for error checking
// ============================================================================

// Is is a convenience wrapper for errors.Is
var Is = errors.Is

// As is a convenience wrapper for errors.As
var As = errors.As

// IsDuplicateTimestamp returns true if err indicates an occupied timestamp.
func IsDuplicateTimestamp(err error) bool {
	return errors.Is(err, ErrDuplicateTimestamp)
}

// IsValidation returns true if err is a configuration/validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrUnknownBackend)
}

// ============================================================================
// Error wrapping utilities
// ============================================================================

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ============================================================================
// Error constructors with context
// ============================================================================

// NewDuplicateTimestamp creates a duplicate-timestamp error carrying the
// offending timestamp.
func NewDuplicateTimestamp(ts time.Time) error {
	return fmt.Errorf("timestamp %s: %w", ts.Format(time.RFC3339Nano), ErrDuplicateTimestamp)
}

// NewUnknownBackend creates an unknown-backend error for the given kind.
func NewUnknownBackend(kind string) error {
	return fmt.Errorf("backend %q: %w", kind, ErrUnknownBackend)
}

// NewValidation creates a validation error with context.
func NewValidation(field, reason string) error {
	return fmt.Errorf("invalid %s: %s: %w", field, reason, ErrInvalidConfig)
}

// NewMissingField creates a missing field error.
func NewMissingField(field string) error {
	return fmt.Errorf("%s: %w", field, ErrMissingField)
}
