package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrNoSelection indicates a cut or copy without an active selection.
	ErrNoSelection = errors.New("no selection")
)
