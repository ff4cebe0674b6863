// Package backend provides terminal backend abstraction for the renderer.
//
// A backend is split into two halves that are used from different
// goroutines: the EventSource is drained by the input goroutine, the
// DrawSurface is written only by the render loop.
package backend

import (
	"sync"

	"github.com/dshills/gridedit/internal/renderer/core"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventInterrupt is a synthetic wake-up posted with PostEvent.
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
// Control-letter chords are reported as KeyRune with ModCtrl and a
// lower-case Rune.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// EventSource delivers input events. PollEvent blocks.
type EventSource interface {
	// PollEvent waits for and returns the next terminal event.
	// It returns an EventNone event once the source has been shut down.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)
}

// DrawSurface receives the cells of a finished frame.
type DrawSurface interface {
	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// Show synchronizes the internal buffer with the actual display.
	Show()
}

// Backend defines the interface for terminal/display backends.
type Backend interface {
	EventSource
	DrawSurface

	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// HideCursor hides the hardware cursor. The editor draws its own caret.
	HideCursor()

	// Beep produces an audible or visual bell.
	Beep()
}

// NullBackend is an in-memory backend for testing.
// It records every flushed frame so tests can inspect what was shown.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]core.Cell
	shown         [][]core.Cell
	shows         int
	beeps         int
	events        chan Event
	closed        chan struct{}
	closeOnce     sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
		closed: make(chan struct{}),
	}
	b.cells = newCells(width, height)
	return b
}

func newCells(width, height int) [][]core.Cell {
	cells := make([][]core.Cell, height)
	for i := range cells {
		cells[i] = make([]core.Cell, width)
		for j := range cells[i] {
			cells[i][j] = core.BlankCell(core.ColorDefault)
		}
	}
	return cells
}

func (b *NullBackend) Init() error { return nil }

func (b *NullBackend) Shutdown() {
	b.closeOnce.Do(func() { close(b.closed) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shown = make([][]core.Cell, len(b.cells))
	for i := range b.cells {
		b.shown[i] = append([]core.Cell(nil), b.cells[i]...)
	}
	b.shows++
}

func (b *NullBackend) HideCursor() {}

func (b *NullBackend) Beep() {
	b.mu.Lock()
	b.beeps++
	b.mu.Unlock()
}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.closed:
		return Event{Type: EventNone}
	}
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// Resize simulates a terminal resize. Like a real terminal, the new size
// is visible through Size immediately and a resize event is queued.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.cells = newCells(width, height)
	b.mu.Unlock()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

// ShownCell returns the cell at (x, y) as of the last Show.
func (b *NullBackend) ShownCell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= len(b.shown) || x < 0 || x >= len(b.shown[y]) {
		return core.Cell{}
	}
	return b.shown[y][x]
}

// ShownRow returns the runes of row y as of the last Show. Like a
// terminal, the column covered by a wide glyph is not read.
func (b *NullBackend) ShownRow(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= len(b.shown) {
		return ""
	}
	row := b.shown[y]
	runes := make([]rune, 0, len(row))
	for x := 0; x < len(row); x++ {
		c := row[x]
		if c.IsContinuation() {
			continue
		}
		runes = append(runes, c.Rune)
		if c.Width == 2 {
			x++
		}
	}
	return string(runes)
}

// ShowCount returns the number of Show calls.
func (b *NullBackend) ShowCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// BeepCount returns the number of Beep calls.
func (b *NullBackend) BeepCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.beeps
}
