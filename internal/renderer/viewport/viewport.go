// Package viewport tracks which part of a document is visible in a text
// area: the first visible line and the horizontal shift in display columns.
package viewport

import "github.com/dshills/gridedit/internal/renderer/core"

// Viewport represents the visible portion of the buffer.
// It is derived state: owners call Reveal after every cursor change.
type Viewport struct {
	// Position in buffer (first visible line)
	firstLine int
	// Display columns scrolled off the left edge
	hshift int

	// Size in screen cells
	width  int
	height int
}

// New creates a viewport with the given size.
// Width and height are clamped to a minimum of 1 to prevent underflow.
func New(width, height int) *Viewport {
	v := &Viewport{}
	v.Resize(width, height)
	return v
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	return v.height
}

// FirstLine returns the first visible line.
func (v *Viewport) FirstLine() int {
	return v.firstLine
}

// HShift returns the horizontal shift in display columns.
func (v *Viewport) HShift() int {
	return v.hshift
}

// Resize updates the viewport size.
// Width and height are clamped to a minimum of 1 to prevent underflow.
func (v *Viewport) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
}

// Reset scrolls back to the origin.
func (v *Viewport) Reset() {
	v.firstLine = 0
	v.hshift = 0
}

// IsLineVisible reports whether line index is on screen.
func (v *Viewport) IsLineVisible(line int) bool {
	return line >= v.firstLine && line < v.firstLine+v.height
}

// LineToRow converts a line index to a row offset inside the viewport.
// The result may be outside [0, Height).
func (v *Viewport) LineToRow(line int) int {
	return line - v.firstLine
}

// FirstChar returns the index of the first character of line drawn at the
// left edge: characters are skipped until their summed display width
// reaches the shift. hidden is true when the whole line lies left of the
// shift.
func (v *Viewport) FirstChar(line []rune) (first int, hidden bool) {
	width := 0
	for width < v.hshift && first < len(line) {
		width += core.DisplayWidth(line[first])
		first++
	}
	return first, width < v.hshift
}

// Reveal scrolls so that the cursor at (lineIndex, char) on line is inside
// the viewport.
//
// Vertically the first line is clamped so lineIndex is visible.
// Horizontally, when the cursor's display column counted from the first
// on-screen character passes width-1 the shift grows by the overflow;
// otherwise, when the cursor's display column from the line start is left
// of the shift, the shift shrinks to it.
func (v *Viewport) Reveal(lineIndex int, line []rune, char int) {
	if lineIndex >= v.firstLine+v.height {
		v.firstLine = lineIndex - v.height + 1
	} else if lineIndex < v.firstLine {
		v.firstLine = lineIndex
	}

	char = min(max(char, 0), len(line))
	first, _ := v.FirstChar(line)
	width := 0
	for i := first; i < char; i++ {
		width += core.DisplayWidth(line[i])
	}
	if width > v.width-1 {
		v.hshift += width - v.width + 1
		return
	}

	raw := core.RunesWidth(line[:char])
	if raw < v.hshift {
		v.hshift = raw
	}
}
