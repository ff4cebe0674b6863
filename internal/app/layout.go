package app

import "github.com/dshills/gridedit/internal/renderer/core"

// Layout places the editor components on a screen of a given size.
//
//	row 0        file name bar, full width
//	rows 1..h-2  gutter [0, gutterWidth) and text area to its right
//	row h-1      status line, full width
type Layout struct {
	FileName core.ScreenRect
	Gutter   core.ScreenRect
	Text     core.ScreenRect
	Status   core.ScreenRect
}

// ComputeLayout returns the layout for a width x height screen.
// Components that do not fit get empty rectangles.
func ComputeLayout(width, height, gutterWidth int) Layout {
	width = max(width, 0)
	height = max(height, 0)
	gutterWidth = min(max(gutterWidth, 0), width)
	bodyHeight := max(height-2, 0)

	var l Layout
	if height > 0 {
		l.FileName = core.RectFromSize(0, 0, 1, width)
	}
	if height > 1 {
		l.Status = core.RectFromSize(height-1, 0, 1, width)
	}
	l.Gutter = core.RectFromSize(1, 0, bodyHeight, gutterWidth)
	l.Text = core.RectFromSize(1, gutterWidth, bodyHeight, width-gutterWidth)
	return l
}
