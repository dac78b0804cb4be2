// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the analysis engine.
var (
	// ErrInsufficientData indicates the input series is shorter than the
	// minimum window an operation needs. Recoverable by supplying more
	// history.
	ErrInsufficientData = errors.New("insufficient data for calculation")

	// ErrInvalidParameter indicates a programmer error such as a
	// non-positive period.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// AnalysisError carries symbol/timeframe context for a failed analysis stage.
type AnalysisError struct {
	Symbol    string
	Timeframe string
	Stage     string
	Err       error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis error [%s %s] %s: %v", e.Symbol, e.Timeframe, e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError.
func NewAnalysisError(symbol, timeframe, stage string, err error) *AnalysisError {
	return &AnalysisError{
		Symbol:    symbol,
		Timeframe: timeframe,
		Stage:     stage,
		Err:       err,
	}
}

// ValidationError represents a validation error on caller-supplied input.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

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

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
