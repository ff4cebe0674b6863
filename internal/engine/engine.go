package engine

import (
	"fmt"
	"strings"

	"github.com/dshills/gridedit/internal/engine/buffer"
	"github.com/dshills/gridedit/internal/engine/cursor"
	"github.com/dshills/gridedit/internal/renderer/core"
	caret "github.com/dshills/gridedit/internal/renderer/cursor"
	"github.com/dshills/gridedit/internal/renderer/viewport"
)

// Re-export commonly used types for convenience.
type (
	// Point is a line/char position.
	Point = buffer.Point

	// Mark is a caret position with column memory.
	Mark = cursor.Mark

	// Selection is the primary mark plus the selection anchor.
	Selection = cursor.Selection

	// Encoding selects the byte form used by SetContent and Content.
	Encoding = buffer.Encoding
)

// Re-export constants.
const (
	EncodingUTF8    = buffer.EncodingUTF8
	EncodingUTF16LE = buffer.EncodingUTF16LE
)

// Direction is a single-unit caret move.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// String returns the name of the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// TextBuffer is an editable document with a caret, a selection and a
// viewport, placed at a rectangle of the screen.
//
// Every operation leaves the caret and anchor inside the document and the
// moving end of the selection inside the viewport.
type TextBuffer struct {
	doc   *buffer.Document
	sel   cursor.Selection
	view  *viewport.Viewport
	caret *caret.Blink

	left, top     int
	width, height int

	colors   Colors
	tabWidth int
	active   bool

	// Initialization
	initText string
}

// New creates a TextBuffer with the given options. Without WithText the
// document is a single empty line.
func New(opts ...Option) *TextBuffer {
	b := &TextBuffer{
		colors:   DefaultColors(),
		tabWidth: DefaultTabWidth,
		active:   true,
		width:    1,
		height:   1,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.caret == nil {
		b.caret = caret.New(caret.DefaultConfig())
	}
	b.view = viewport.New(b.width, b.height)
	b.width, b.height = b.view.Width(), b.view.Height()
	b.SetColors(b.colors)
	b.doc = buffer.NewDocumentFromString(b.initText)
	b.initText = ""
	return b
}

// Document returns the underlying document. Callers must not mutate it.
func (b *TextBuffer) Document() *buffer.Document {
	return b.doc
}

// Selection returns the current caret and selection state.
func (b *TextBuffer) Selection() Selection {
	return b.sel
}

// Viewport returns the scroll state.
func (b *TextBuffer) Viewport() *viewport.Viewport {
	return b.view
}

// Caret returns the caret blink.
func (b *TextBuffer) Caret() *caret.Blink {
	return b.caret
}

// Colors returns the text area colors.
func (b *TextBuffer) Colors() Colors {
	return b.colors
}

// SetColors changes the text area colors. The caret's off phase uses the
// text colors.
func (b *TextBuffer) SetColors(c Colors) {
	b.colors = c
	cfg := b.caret.Config()
	cfg.Off = core.NewStyle(c.Text, c.Background)
	b.caret.SetConfig(cfg)
}

// Bounds returns the screen rectangle of the text area.
func (b *TextBuffer) Bounds() core.ScreenRect {
	return core.RectFromSize(b.top, b.left, b.height, b.width)
}

// SetBounds moves and resizes the text area and scrolls the caret back into
// view.
func (b *TextBuffer) SetBounds(left, top, width, height int) {
	b.left, b.top = left, top
	b.view.Resize(width, height)
	b.width, b.height = b.view.Width(), b.view.Height()
	b.reveal(b.sel.Head())
}

// Active reports whether the buffer has input focus.
func (b *TextBuffer) Active() bool {
	return b.active
}

// SetActive gives or takes input focus. An inactive buffer ignores editing
// and navigation commands and draws no caret.
func (b *TextBuffer) SetActive(active bool) {
	b.active = active
}

// LineCount returns the number of lines.
func (b *TextBuffer) LineCount() int {
	return b.doc.LineCount()
}

// Revision returns the document revision.
func (b *TextBuffer) Revision() buffer.Revision {
	return b.doc.Revision()
}

// CurrentLine returns the line of the moving end: the anchor while
// selecting, otherwise the primary mark.
func (b *TextBuffer) CurrentLine() int {
	return b.sel.Head().Line
}

// CurrentChar returns the char of the moving end.
func (b *TextBuffer) CurrentChar() int {
	return b.sel.Head().Char
}

// Selecting reports whether a selection is active.
func (b *TextBuffer) Selecting() bool {
	return b.sel.Active
}

func (b *TextBuffer) reveal(m Mark) {
	b.view.Reveal(m.Line, b.doc.Line(m.Line), m.Char)
}

// InsertChar applies one character of input. An active selection is
// deleted first. '\r' and '\n' split the line, '\t' inserts spaces and
// '\b' then backspaces once more.
func (b *TextBuffer) InsertChar(ch rune) {
	if !b.active {
		return
	}
	if b.sel.Active {
		b.deleteSelection()
	}
	if ch == '\b' {
		b.Backspace()
		return
	}

	p := b.sel.Primary.Point()
	switch ch {
	case '\r', '\n':
		b.doc.SplitLine(p)
		p = Point{Line: p.Line + 1, Char: 0}
	case '\t':
		b.doc.InsertRunes(p, []rune(strings.Repeat(" ", b.tabWidth)))
		p.Char += b.tabWidth
	default:
		b.doc.InsertRune(p, ch)
		p.Char++
	}
	b.sel.Collapse(cursor.MarkAt(p))
	b.reveal(b.sel.Primary)
	b.caret.ForceVisible()
}

// InsertText inserts text as a sequence of InsertChar calls.
func (b *TextBuffer) InsertText(text string) {
	for _, r := range text {
		b.InsertChar(r)
	}
}

// Backspace deletes the selection when one is active. Otherwise it removes
// the rune before the caret, joining with the previous line at char 0.
// At the document start it does nothing.
func (b *TextBuffer) Backspace() {
	if !b.active {
		return
	}
	if b.sel.Active {
		b.deleteSelection()
		return
	}

	m := b.sel.Primary
	switch {
	case m.Char > 0:
		b.doc.DeleteRune(Point{Line: m.Line, Char: m.Char - 1})
		m = Mark{Line: m.Line, Char: m.Char - 1}
	case m.Line > 0:
		prevLen := b.doc.LineLen(m.Line - 1)
		b.doc.JoinNext(m.Line - 1)
		m = Mark{Line: m.Line - 1, Char: prevLen}
	}
	b.sel.Collapse(m)
	b.reveal(b.sel.Primary)
	b.caret.ForceVisible()
}

func (b *TextBuffer) deleteSelection() {
	first, last := b.sel.Range()
	b.DeleteRange(first, last)
}

// DeleteRange removes the text between first and last and places the caret
// at the earlier of the two. The selection ends and column memory resets.
func (b *TextBuffer) DeleteRange(first, last Mark) {
	first, last = first.Clamp(b.doc), last.Clamp(b.doc)
	if first.After(last) {
		first, last = last, first
	}
	b.doc.DeleteRange(first.Point(), last.Point())
	b.sel.Collapse(cursor.MarkAt(first.Point()))
	b.reveal(b.sel.Primary)
}

func (b *TextBuffer) step(m Mark, dir Direction) Mark {
	switch dir {
	case Left:
		return m.Left(b.doc)
	case Right:
		return m.Right(b.doc)
	case Up:
		return m.Up(b.doc)
	case Down:
		return m.Down(b.doc)
	default:
		return m
	}
}

// MoveCursor moves one unit in dir.
//
// With extend the selection is started if needed and its anchor moves.
// Without extend an active selection collapses first: Left and Right stop
// at the start or end of the range, Up and Down continue from there.
func (b *TextBuffer) MoveCursor(dir Direction, extend bool) {
	if !b.active {
		return
	}
	if extend {
		b.sel.Begin()
		b.sel.Anchor = b.step(b.sel.Anchor, dir)
		b.caret.ForceVisible()
		b.reveal(b.sel.Anchor)
		return
	}

	if b.sel.Active {
		first, last := b.sel.Range()
		switch dir {
		case Left:
			b.sel.Collapse(first)
			b.reveal(b.sel.Primary)
			return
		case Right:
			b.sel.Collapse(last)
			b.reveal(b.sel.Primary)
			return
		case Up:
			b.sel.Collapse(first)
		case Down:
			b.sel.Collapse(last)
		}
	}

	b.sel.Primary = b.step(b.sel.Primary, dir)
	b.sel.Anchor = b.sel.Primary
	b.caret.ForceVisible()
	b.reveal(b.sel.Primary)
}

// SelectAll selects the whole document. The primary mark goes to the start
// and the anchor to the end of the last line.
func (b *TextBuffer) SelectAll() {
	if !b.active {
		return
	}
	b.sel.Primary = Mark{}
	b.sel.Anchor = cursor.MarkAt(b.doc.End())
	b.sel.Active = true
	b.reveal(b.sel.Anchor)
}

// SelectedText returns the selected text, or "" without a selection.
func (b *TextBuffer) SelectedText() string {
	if !b.sel.Active {
		return ""
	}
	first, last := b.sel.Range()
	return b.doc.Text(first.Point(), last.Point())
}

// Copy returns the selected text.
func (b *TextBuffer) Copy() (string, error) {
	if !b.active || !b.sel.Active {
		return "", ErrNoSelection
	}
	return b.SelectedText(), nil
}

// Cut returns the selected text and deletes it.
func (b *TextBuffer) Cut() (string, error) {
	text, err := b.Copy()
	if err != nil {
		return "", err
	}
	b.deleteSelection()
	return text, nil
}

// SetContent replaces the document with data in enc, moves the caret to the
// start, ends the selection and scrolls to the origin.
func (b *TextBuffer) SetContent(data []byte, enc Encoding) error {
	if err := b.doc.SetContent(data, enc); err != nil {
		return err
	}
	b.resetPosition()
	return nil
}

// Content returns the document encoded in enc.
func (b *TextBuffer) Content(enc Encoding) ([]byte, error) {
	return b.doc.Content(enc)
}

// SetText replaces the document with text.
func (b *TextBuffer) SetText(text string) {
	b.doc.SetLines(buffer.SplitLines(text))
	b.resetPosition()
}

// Text returns the document as a string.
func (b *TextBuffer) Text() string {
	return b.doc.String()
}

func (b *TextBuffer) resetPosition() {
	b.sel.Collapse(Mark{})
	b.view.Reset()
}
