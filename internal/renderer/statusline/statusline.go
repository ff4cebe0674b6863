// Package statusline renders the bottom status line: caret position, file
// name, modified marker and a transient message.
package statusline

import (
	"strconv"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/gridedit/internal/renderer/core"
)

// DefaultMessageTimeout is how long a message stays visible.
const DefaultMessageTimeout = 5 * time.Second

// Canvas is the part of the glyph grid the status line draws into.
type Canvas interface {
	DrawTextLine(text []rune, modelX, y, maxWidth int, fg, bg core.Color, pad bool) int
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// Colors holds status line colors.
type Colors struct {
	Text       core.Color
	Background core.Color
	Error      core.Color
}

// DefaultColors returns white on cyan with errors in light red.
func DefaultColors() Colors {
	return Colors{
		Text:       core.ColorWhite,
		Background: core.ColorCyan,
		Error:      core.ColorLightRed,
	}
}

// StatusLine renders a one-row status bar.
type StatusLine struct {
	colors Colors

	left, top int
	width     int

	// Display state
	line     int // 1-based
	col      int // 1-based
	filename string
	modified bool

	// Message display
	message     string
	messageType MessageType
	expires     time.Time
	timeout     time.Duration
	now         func() time.Time
}

// Option configures a StatusLine.
type Option func(*StatusLine)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *StatusLine) {
		s.now = now
	}
}

// WithMessageTimeout sets how long messages stay visible. Zero keeps them
// until cleared.
func WithMessageTimeout(d time.Duration) Option {
	return func(s *StatusLine) {
		s.timeout = d
	}
}

// New creates a status line at row top spanning width columns.
func New(left, top, width int, colors Colors, opts ...Option) *StatusLine {
	s := &StatusLine{
		colors:  colors,
		line:    1,
		col:     1,
		timeout: DefaultMessageTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetBounds(left, top, width)
	return s
}

// SetBounds moves and resizes the status line.
func (s *StatusLine) SetBounds(left, top, width int) {
	s.left, s.top = left, top
	s.width = max(width, 0)
}

// Bounds returns the status line's screen rectangle.
func (s *StatusLine) Bounds() core.ScreenRect {
	return core.RectFromSize(s.top, s.left, 1, s.width)
}

// SetColors changes the status line colors.
func (s *StatusLine) SetColors(c Colors) {
	s.colors = c
}

// SetPosition updates the caret position (1-based).
func (s *StatusLine) SetPosition(line, col int) {
	s.line = line
	s.col = col
}

// SetFilename updates the displayed file name.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetMessage displays a message until the timeout passes or it is
// replaced.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
	s.expires = s.now().Add(s.timeout)
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the visible message, or "" when none is shown.
func (s *StatusLine) Message() (string, MessageType) {
	if s.message != "" && s.timeout > 0 && s.now().After(s.expires) {
		s.ClearMessage()
	}
	return s.message, s.messageType
}

// Text returns the status bar text fitted to the width: the position and
// file name on the left, the message on the right. The message is
// truncated first, then the file name.
func (s *StatusLine) Text() string {
	left := "  Ln " + strconv.Itoa(max(s.line, 1)) + ", Col " + strconv.Itoa(max(s.col, 1)) + "  "
	name := s.filename
	if name == "" {
		name = "[No Name]"
	}
	if s.modified {
		name += " *"
	}
	left += name

	msg, _ := s.Message()
	if msg == "" {
		return runewidth.FillRight(runewidth.Truncate(left, s.width, "…"), s.width)
	}

	leftWidth := runewidth.StringWidth(left)
	room := s.width - leftWidth - 2
	if room < 4 {
		left = runewidth.Truncate(left, max(s.width/2, 0), "…")
		leftWidth = runewidth.StringWidth(left)
		room = s.width - leftWidth - 2
	}
	if room <= 0 {
		return runewidth.FillRight(runewidth.Truncate(left, s.width, "…"), s.width)
	}
	msg = runewidth.Truncate(msg, room, "…") + " "
	return left + runewidth.FillLeft(msg, s.width-leftWidth)
}

// Render draws the status bar.
func (s *StatusLine) Render(c Canvas) {
	if s.width == 0 {
		return
	}
	fg := s.colors.Text
	if _, typ := s.Message(); typ == MessageError {
		fg = s.colors.Error
	}
	c.DrawTextLine([]rune(s.Text()), s.left, s.top, s.width, fg, s.colors.Background, true)
}
