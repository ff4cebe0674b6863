// Package renderer is the display layer of the editor. The package itself
// holds no code; its subpackages are:
//
//	core        colors, styles, cells, rectangles and glyph widths
//	backend     terminal (tcell) and in-memory event sources and surfaces
//	grid        the glyph grid components draw into once per frame
//	viewport    vertical and horizontal scroll state of a text area
//	cursor      the blinking caret
//	gutter      line numbers
//	statusline  position, file name and transient messages
//
// A frame is drawn by every component into the grid, in any order, and
// then flushed with grid.RenderFrame. Rectangles are resolved after text,
// so a fill always wins over glyphs in its area.
package renderer
