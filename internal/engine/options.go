package engine

import (
	"github.com/dshills/gridedit/internal/renderer/core"
	caret "github.com/dshills/gridedit/internal/renderer/cursor"
)

// Default configuration values.
const (
	DefaultTabWidth = 4
)

// Colors are the text area colors.
type Colors struct {
	Text               core.Color
	Background         core.Color
	SelectedText       core.Color
	SelectedBackground core.Color
}

// DefaultColors returns black text on white with a light gray selection.
func DefaultColors() Colors {
	return Colors{
		Text:               core.ColorBlack,
		Background:         core.ColorWhite,
		SelectedText:       core.ColorBlack,
		SelectedBackground: core.ColorLightGray,
	}
}

// Option configures a TextBuffer during creation.
type Option func(*TextBuffer)

// WithText sets the initial content.
func WithText(text string) Option {
	return func(b *TextBuffer) {
		b.initText = text
	}
}

// WithBounds sets the screen rectangle of the text area.
func WithBounds(left, top, width, height int) Option {
	return func(b *TextBuffer) {
		b.left, b.top = left, top
		b.width, b.height = width, height
	}
}

// WithColors sets the text area colors.
func WithColors(c Colors) Option {
	return func(b *TextBuffer) {
		b.colors = c
	}
}

// WithTabWidth sets how many spaces a tab inserts.
func WithTabWidth(width int) Option {
	return func(b *TextBuffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// WithCaret replaces the caret blink, for example to inject a clock.
func WithCaret(c *caret.Blink) Option {
	return func(b *TextBuffer) {
		b.caret = c
	}
}
