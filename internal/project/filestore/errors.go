package filestore

import (
	"errors"
	"fmt"
)

// Standard errors returned by the file store.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrFileTooLarge indicates the file exceeds the maximum size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNoPath indicates a save was requested without a file name.
	ErrNoPath = errors.New("no file name")

	// ErrRecoveryKept indicates a recovery file was read but could not be
	// removed. The content read is still valid.
	ErrRecoveryKept = errors.New("recovery file kept")
)

// PathError represents an error associated with a file path.
type PathError struct {
	Op   string // Operation that failed (read, write, recover)
	Path string // File path
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error indicates a file was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
