package app

import (
	"github.com/dshills/gridedit/internal/engine"
	"github.com/dshills/gridedit/internal/engine/buffer"
)

// Document is the edited text together with its save state.
type Document struct {
	// Buffer is the text area's buffer.
	Buffer *engine.TextBuffer

	encoding buffer.Encoding
	saved    buffer.Revision
	// unsaved marks content that differs from the file although the
	// revision says otherwise, such as recovered text.
	unsaved bool
}

// NewDocument wraps a buffer whose current content counts as saved.
func NewDocument(b *engine.TextBuffer, enc buffer.Encoding) *Document {
	return &Document{
		Buffer:   b,
		encoding: enc,
		saved:    b.Revision(),
	}
}

// Encoding returns the file encoding.
func (d *Document) Encoding() buffer.Encoding {
	return d.encoding
}

// Load replaces the text with file content. Recovered content is marked
// modified because it was never saved to the file.
func (d *Document) Load(data []byte, recovered bool) error {
	if err := d.Buffer.SetContent(data, d.encoding); err != nil {
		return err
	}
	d.MarkSaved()
	d.unsaved = recovered
	return nil
}

// Content returns the text encoded for the file.
func (d *Document) Content() ([]byte, error) {
	return d.Buffer.Content(d.encoding)
}

// IsModified reports unsaved changes.
func (d *Document) IsModified() bool {
	return d.unsaved || d.Buffer.Revision() != d.saved
}

// MarkSaved records the current text as saved.
func (d *Document) MarkSaved() {
	d.saved = d.Buffer.Revision()
	d.unsaved = false
}
