package app

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard receives cut and copied text. The editor never reads it.
type Clipboard interface {
	Write(text string) error
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// Write implements Clipboard.
func (SystemClipboard) Write(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// MemoryClipboard keeps the last written text in memory.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
	// Err, when set, is returned by Write instead of storing the text.
	Err error
}

// Write implements Clipboard.
func (c *MemoryClipboard) Write(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.text = text
	return nil
}

// Text returns the last written text.
func (c *MemoryClipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}
