// Package gutter renders the line number column to the left of the text
// area.
package gutter

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/gridedit/internal/renderer/core"
)

// Padding is the number of blank columns right of each line number.
const Padding = 2

// DefaultWidth is the gutter width used by the editor layout.
const DefaultWidth = 8

// Canvas is the part of the glyph grid the gutter draws into.
type Canvas interface {
	DrawTextLine(text []rune, modelX, y, maxWidth int, fg, bg core.Color, pad bool) int
	DrawRect(left, top, width, height int, fill core.Color, clearText bool)
}

// Colors holds gutter colors.
type Colors struct {
	Number      core.Color
	CurrentLine core.Color
	Background  core.Color
}

// DefaultColors returns gray numbers on white with the current line in
// light blue.
func DefaultColors() Colors {
	return Colors{
		Number:      core.ColorGray,
		CurrentLine: core.ColorLightBlue,
		Background:  core.ColorWhite,
	}
}

// Gutter draws right-aligned 1-based line numbers for the visible lines of
// a text area. Rows past the last line are filled with the background.
type Gutter struct {
	colors Colors

	left, top     int
	width, height int

	firstLine   int // 0-based
	currentLine int // 0-based
	lineCount   int
}

// New creates a gutter at the given screen rectangle.
func New(left, top, width, height int, colors Colors) *Gutter {
	g := &Gutter{colors: colors}
	g.SetBounds(left, top, width, height)
	return g
}

// SetBounds moves and resizes the gutter.
func (g *Gutter) SetBounds(left, top, width, height int) {
	g.left, g.top = left, top
	g.width, g.height = max(width, 0), max(height, 0)
}

// Bounds returns the gutter's screen rectangle.
func (g *Gutter) Bounds() core.ScreenRect {
	return core.RectFromSize(g.top, g.left, g.height, g.width)
}

// SetColors changes the gutter colors.
func (g *Gutter) SetColors(c Colors) {
	g.colors = c
}

// Update sets the 0-based first visible line, the 0-based current line and
// the total line count.
func (g *Gutter) Update(firstLine, currentLine, lineCount int) {
	g.firstLine = firstLine
	g.currentLine = currentLine
	g.lineCount = lineCount
}

// Label returns the text drawn for a 0-based line: the 1-based number right
// aligned in width-Padding columns followed by Padding spaces. Numbers wider
// than the space are cut on the left.
func Label(line, width int) string {
	num := strconv.Itoa(line + 1)
	field := width - Padding
	if field <= 0 {
		return runewidth.FillRight("", max(width, 0))
	}
	if w := runewidth.StringWidth(num); w > field {
		num = num[w-field:]
	}
	return runewidth.FillLeft(num, field) + "  "
}

// Render draws the numbers and the background fill.
func (g *Gutter) Render(c Canvas) {
	if g.width == 0 || g.height == 0 {
		return
	}
	row := 0
	for line := g.firstLine; line < g.lineCount && row < g.height; line++ {
		fg := g.colors.Number
		if line == g.currentLine {
			fg = g.colors.CurrentLine
		}
		c.DrawTextLine([]rune(Label(line, g.width)), g.left, g.top+row, g.width, fg, g.colors.Background, true)
		row++
	}
	if row < g.height {
		c.DrawRect(g.left, g.top+row, g.width, g.height-row, g.colors.Background, true)
	}
}
