package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates the value is of the right type but not
	// acceptable.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError describes a rejected setting.
type ValidationError struct {
	// Path is the setting path, e.g. "editor.tick".
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
	// Err is ErrTypeMismatch or ErrValidationFailed.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Unwrap returns the error category.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func typeError(path string, value any, expected string) error {
	return &ValidationError{
		Path:    path,
		Message: fmt.Sprintf("expected %s, got %T", expected, value),
		Value:   value,
		Err:     ErrTypeMismatch,
	}
}

func invalid(path string, value any, format string, args ...any) error {
	return &ValidationError{
		Path:    path,
		Message: fmt.Sprintf(format, args...),
		Value:   value,
		Err:     ErrValidationFailed,
	}
}
