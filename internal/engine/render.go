package engine

import (
	"github.com/dshills/gridedit/internal/renderer/core"
)

// Canvas is the part of the glyph grid a TextBuffer draws into.
// Columns are model columns: one per glyph.
type Canvas interface {
	DrawTextLine(text []rune, modelX, y, maxWidth int, fg, bg core.Color, pad bool) int
	DrawRect(left, top, width, height int, fill core.Color, clearText bool)
	SetCellStyle(modelX, y int, fg, bg core.Color)
}

// Render draws the visible lines, the selection highlight and the caret.
// Rows below the last line are filled with the background color.
func (b *TextBuffer) Render(c Canvas) {
	first := b.view.FirstLine()
	y := b.top
	for i := first; i < b.doc.LineCount() && y < b.top+b.height; i++ {
		line := b.doc.Line(i)
		fc, _ := b.view.FirstChar(line)
		c.DrawTextLine(line[fc:], b.left, y, b.width, b.colors.Text, b.colors.Background, true)
		y++
	}
	if y < b.top+b.height {
		c.DrawRect(b.left, y, b.width, b.top+b.height-y, b.colors.Background, true)
	}

	if b.sel.Active {
		b.renderSelection(c)
		return
	}
	if b.active {
		m := b.sel.Primary
		fc, _ := b.view.FirstChar(b.doc.Line(m.Line))
		b.caret.Render(c, b.left+m.Char-fc, b.top+b.view.LineToRow(m.Line))
	}
}

func (b *TextBuffer) renderSelection(c Canvas) {
	first, last := b.sel.Range()
	if first.Line == last.Line {
		b.renderSelectedSpan(c, first.Line, first.Char, last.Char, false)
		return
	}
	b.renderSelectedSpan(c, first.Line, first.Char, b.doc.LineLen(first.Line), true)
	for i := first.Line + 1; i < last.Line; i++ {
		if !b.view.IsLineVisible(i) {
			continue
		}
		fc, _ := b.view.FirstChar(b.doc.Line(i))
		b.renderSelectedSpan(c, i, fc, b.doc.LineLen(i), true)
	}
	fc, _ := b.view.FirstChar(b.doc.Line(last.Line))
	b.renderSelectedSpan(c, last.Line, fc, last.Char, false)
}

// renderSelectedSpan redraws chars [leftChar, rightChar) of a line in the
// selection colors. With spaceAfter one more cell is highlighted for the
// line break.
func (b *TextBuffer) renderSelectedSpan(c Canvas, lineIndex, leftChar, rightChar int, spaceAfter bool) {
	if !b.view.IsLineVisible(lineIndex) {
		return
	}
	line := b.doc.Line(lineIndex)
	fc, hidden := b.view.FirstChar(line)
	if hidden {
		return
	}

	start := max(leftChar, fc)
	rightChar = min(rightChar, len(line))
	widthBefore := core.RunesWidth(line[fc:start])
	width := b.width - widthBefore
	if width <= 0 {
		return
	}

	var text []rune
	if start < rightChar {
		text = line[start:rightChar]
	}
	if spaceAfter {
		text = append(text[:len(text):len(text)], ' ')
	}
	y := b.top + b.view.LineToRow(lineIndex)
	c.DrawTextLine(text, b.left+start-fc, y, width, b.colors.SelectedText, b.colors.SelectedBackground, false)
}
