// Package grid implements the glyph grid: a width x height array of styled
// cells that components draw into once per frame and that is flushed to a
// backend.DrawSurface in a single Show.
//
// Coordinates passed to drawing calls use model columns on the row: one
// column per glyph, regardless of how many device cells the glyph covers.
// ToDeviceColumn translates a model column into a device column by walking
// what has already been drawn on that row during the current frame.
package grid

import (
	"github.com/dshills/gridedit/internal/renderer/backend"
	"github.com/dshills/gridedit/internal/renderer/core"
)

// DeferredRect is a queued rectangle fill.
type DeferredRect struct {
	// Left is a model column, translated per row when the rect is resolved.
	Left, Top     int
	Width, Height int
	Fill          core.Color
	// ClearText replaces covered glyphs with spaces. When false only the
	// background changes.
	ClearText bool
}

// Grid is a double-buffered cell grid.
//
// Rectangles queued with DrawRect are resolved during RenderFrame, after all
// text written in the frame, so a rectangle always wins over text placed in
// its area regardless of call order. The rect queue is reused between
// frames.
type Grid struct {
	surface    backend.DrawSurface
	width      int
	height     int
	cells      []core.Cell
	front      []core.Cell
	fullRedraw bool
	background core.Color

	rects     []DeferredRect
	rectCount int

	resizeHandlers []func(width, height int)
}

// New creates a grid sized to the surface and cleared to background.
func New(surface backend.DrawSurface, background core.Color) *Grid {
	g := &Grid{surface: surface, background: background}
	w, h := surface.Size()
	g.allocate(w, h)
	return g
}

func (g *Grid) allocate(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g.width = width
	g.height = height
	g.cells = make([]core.Cell, width*height)
	g.front = make([]core.Cell, width*height)
	g.clear()
	g.fullRedraw = true
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Background returns the color the grid is cleared to.
func (g *Grid) Background() core.Color {
	return g.background
}

// OnResize registers a callback run after the grid is reallocated.
// Callbacks run in registration order.
func (g *Grid) OnResize(fn func(width, height int)) {
	g.resizeHandlers = append(g.resizeHandlers, fn)
}

// Resize reallocates the grid and notifies resize callbacks. It is a no-op
// when the size is unchanged.
func (g *Grid) Resize(width, height int) {
	if width == g.width && height == g.height {
		return
	}
	g.allocate(width, height)
	for _, fn := range g.resizeHandlers {
		fn(g.width, g.height)
	}
}

// Cell returns the cell at a device position, or the zero Cell when the
// position is out of bounds.
func (g *Grid) Cell(x, y int) core.Cell {
	if !g.inBounds(x, y) {
		return core.Cell{}
	}
	return g.cells[y*g.width+x]
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) set(x, y int, c core.Cell) {
	g.cells[y*g.width+x] = c
}

// DisplayWidth returns the number of device columns r occupies.
func DisplayWidth(r rune) int {
	return core.DisplayWidth(r)
}

// ToDeviceColumn translates a model column on row y to a device column.
// Negative columns and rows outside the grid are returned unchanged.
func (g *Grid) ToDeviceColumn(modelX, y int) int {
	if modelX <= 0 || y < 0 || y >= g.height {
		return modelX
	}
	row := g.cells[y*g.width : (y+1)*g.width]
	dev := 0
	for m := 0; m < modelX && dev < g.width; m++ {
		dev += max(row[dev].Width, 1)
	}
	return dev
}

// DrawTextLine writes text on row y starting at model column modelX. At most
// maxWidth device columns are used; a rune that would not fit entirely is
// not drawn. With pad the rest of maxWidth is filled with blanks in bg.
// It returns the number of device columns written, padding included.
func (g *Grid) DrawTextLine(text []rune, modelX, y, maxWidth int, fg, bg core.Color, pad bool) int {
	if y < 0 || y >= g.height || maxWidth <= 0 || modelX < 0 {
		return 0
	}
	x := g.ToDeviceColumn(modelX, y)
	style := core.NewStyle(fg, bg)
	written := 0
	for _, r := range text {
		w := core.DisplayWidth(r)
		if written+w > maxWidth || x+w > g.width {
			break
		}
		g.set(x, y, core.NewStyledCell(r, style))
		if w == 2 {
			g.set(x+1, y, core.ContinuationCell(style))
		}
		x += w
		written += w
	}
	if pad {
		blank := core.Cell{Rune: ' ', Width: 1, Style: style}
		for written < maxWidth && x < g.width {
			g.set(x, y, blank)
			x++
			written++
		}
	}
	return written
}

// DrawRect queues a rectangle fill for the current frame.
func (g *Grid) DrawRect(left, top, width, height int, fill core.Color, clearText bool) {
	r := DeferredRect{
		Left: left, Top: top,
		Width: width, Height: height,
		Fill: fill, ClearText: clearText,
	}
	if g.rectCount < len(g.rects) {
		g.rects[g.rectCount] = r
	} else {
		g.rects = append(g.rects, r)
	}
	g.rectCount++
}

// SetCellStyle changes the colors of the glyph at model column modelX on
// row y without touching its rune.
func (g *Grid) SetCellStyle(modelX, y int, fg, bg core.Color) {
	if modelX < 0 {
		return
	}
	x := g.ToDeviceColumn(modelX, y)
	if !g.inBounds(x, y) {
		return
	}
	i := y*g.width + x
	g.cells[i].Style = core.NewStyle(fg, bg)
}

// RenderFrame resolves the queued rects, fixes wide-glyph continuation
// cells, flushes the grid to the surface, clears it for the next frame and
// picks up a changed surface size.
func (g *Grid) RenderFrame() {
	g.resolveRects()
	g.fixWideGlyphs()
	g.flush()
	g.clear()
	if w, h := g.surface.Size(); w != g.width || h != g.height {
		g.Resize(w, h)
	}
}

func (g *Grid) resolveRects() {
	for i := 0; i < g.rectCount; i++ {
		r := g.rects[i]
		for y := r.Top; y < r.Top+r.Height; y++ {
			if y < 0 || y >= g.height {
				continue
			}
			x1 := g.ToDeviceColumn(r.Left, y)
			for x := max(x1, 0); x < x1+r.Width && x < g.width; x++ {
				c := &g.cells[y*g.width+x]
				c.Style = c.Style.WithBackground(r.Fill)
				if r.ClearText {
					c.Rune = ' '
					c.Width = 1
				}
			}
		}
	}
	g.rectCount = 0
}

// fixWideGlyphs makes the cell right of every wide glyph a continuation
// carrying the glyph's style, and turns continuations left without a wide
// glyph into blanks.
func (g *Grid) fixWideGlyphs() {
	for y := 0; y < g.height; y++ {
		row := g.cells[y*g.width : (y+1)*g.width]
		for x := 0; x < len(row); x++ {
			c := row[x]
			switch {
			case c.Width == 2 && x+1 < len(row):
				row[x+1] = core.ContinuationCell(c.Style)
				x++
			case c.Width == 2:
				row[x] = core.Cell{Rune: ' ', Width: 1, Style: c.Style}
			case c.IsContinuation():
				row[x] = core.Cell{Rune: ' ', Width: 1, Style: c.Style}
			}
		}
	}
}

// flush pushes changed cells to the surface and shows them. A
// continuation cell is sent as a blank so the column never keeps stale
// text when the surface draws the glyph on its left one cell wide.
func (g *Grid) flush() {
	for i, c := range g.cells {
		if !g.fullRedraw && c.Equals(g.front[i]) {
			continue
		}
		g.front[i] = c
		if c.IsContinuation() {
			c = core.Cell{Rune: ' ', Width: 1, Style: c.Style}
		}
		g.surface.SetCell(i%g.width, i/g.width, c)
	}
	g.fullRedraw = false
	g.surface.Show()
}

func (g *Grid) clear() {
	blank := core.BlankCell(g.background)
	for i := range g.cells {
		g.cells[i] = blank
	}
}

