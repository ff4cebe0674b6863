package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoFileName indicates save-as was confirmed with an empty name.
	ErrNoFileName = errors.New("no file name")

	// ErrClipboardUnsupported indicates no clipboard utility is available.
	ErrClipboardUnsupported = errors.New("clipboard not supported")

	// ErrUnknownCommand indicates Execute was given an unregistered name.
	ErrUnknownCommand = errors.New("unknown command")
)

// FileError wraps a failure to read or write the edited file.
type FileError struct {
	Op   string // open, save, recover
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// CommandError wraps a failed editor command.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
