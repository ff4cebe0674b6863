// Package cursor renders the editor caret with a blink animation.
package cursor

import (
	"time"

	"github.com/dshills/gridedit/internal/renderer/core"
)

// DefaultPeriod is the time the caret spends in each blink phase.
const DefaultPeriod = 500 * time.Millisecond

// StyleSetter is the part of the glyph grid the caret draws with.
type StyleSetter interface {
	SetCellStyle(modelX, y int, fg, bg core.Color)
}

// Config holds caret configuration.
type Config struct {
	// Period is the blink interval (caret toggles on/off at this rate).
	Period time.Duration

	// On is the caret style in the visible phase.
	On core.Style

	// Off is the caret style in the hidden phase.
	Off core.Style
}

// DefaultConfig returns the default caret configuration: white on light
// blue when on, black on white when off.
func DefaultConfig() Config {
	return Config{
		Period: DefaultPeriod,
		On:     core.NewStyle(core.ColorWhite, core.ColorLightBlue),
		Off:    core.NewStyle(core.ColorBlack, core.ColorWhite),
	}
}

// Blink is a timed on/off toggle for a 1x1 caret.
// It is used only from the render loop and is not safe for concurrent use.
type Blink struct {
	config Config
	last   time.Time
	on     bool
	now    func() time.Time
}

// Option configures a Blink.
type Option func(*Blink)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Blink) {
		b.now = now
	}
}

// New creates a caret that starts in the off phase.
func New(config Config, opts ...Option) *Blink {
	if config.Period <= 0 {
		config.Period = DefaultPeriod
	}
	b := &Blink{config: config, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	b.last = b.now()
	return b
}

// Config returns the current configuration.
func (b *Blink) Config() Config {
	return b.config
}

// SetConfig updates the caret configuration.
func (b *Blink) SetConfig(config Config) {
	if config.Period <= 0 {
		config.Period = b.config.Period
	}
	b.config = config
}

// Visible reports whether the caret is in its on phase.
func (b *Blink) Visible() bool {
	return b.on
}

// Render flips the phase once more than a period has elapsed since the
// last flip and draws the caret at model column x on row y.
func (b *Blink) Render(s StyleSetter, x, y int) {
	if t := b.now(); t.Sub(b.last) > b.config.Period {
		b.last = t
		b.on = !b.on
	}
	style := b.config.Off
	if b.on {
		style = b.config.On
	}
	s.SetCellStyle(x, y, style.Foreground, style.Background)
}

// ForceVisible turns the caret on after an edit or move. When it was off,
// the phase start moves forward by one period so the caret stays on for a
// full period from then.
func (b *Blink) ForceVisible() {
	if !b.on {
		b.last = b.last.Add(b.config.Period)
		b.on = true
	}
}
