package buffer

import (
	"strings"
)

// Document is an ordered sequence of lines. It never has fewer than one
// line. Positions passed to mutators are clamped into the document.
type Document struct {
	lines    [][]rune
	revision Revision
}

// NewDocument creates a document with a single empty line.
func NewDocument() *Document {
	return &Document{lines: [][]rune{{}}}
}

// NewDocumentFromString creates a document from text split on '\n'.
func NewDocumentFromString(text string) *Document {
	d := &Document{}
	d.SetLines(SplitLines(text))
	return d
}

// SplitLines splits text into lines on '\n'. The result always has at
// least one line.
func SplitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the runes of line i. The slice is owned by the document and
// must not be modified. Out of range indices return nil.
func (d *Document) Line(i int) []rune {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	return d.lines[i]
}

// LineLen returns the number of runes on line i.
func (d *Document) LineLen(i int) int {
	return len(d.Line(i))
}

// Lines returns a copy of all lines.
func (d *Document) Lines() [][]rune {
	out := make([][]rune, len(d.lines))
	for i, l := range d.lines {
		out[i] = append([]rune(nil), l...)
	}
	return out
}

// Revision returns the current revision.
func (d *Document) Revision() Revision {
	return d.revision
}

// End returns the position after the last rune of the last line.
func (d *Document) End() Point {
	last := len(d.lines) - 1
	return Point{Line: last, Char: len(d.lines[last])}
}

// Clamp returns p moved into the document.
func (d *Document) Clamp(p Point) Point {
	p.Line = min(max(p.Line, 0), len(d.lines)-1)
	p.Char = min(max(p.Char, 0), len(d.lines[p.Line]))
	return p
}

// SetLines replaces the whole document. An empty slice leaves a single
// empty line.
func (d *Document) SetLines(lines [][]rune) {
	if len(lines) == 0 {
		lines = [][]rune{{}}
	}
	d.lines = lines
	d.touch()
}

func (d *Document) touch() {
	d.revision++
}

// InsertRune inserts r at p.
func (d *Document) InsertRune(p Point, r rune) {
	d.InsertRunes(p, []rune{r})
}

// InsertRunes inserts runes at p without interpreting line breaks.
func (d *Document) InsertRunes(p Point, runes []rune) {
	if len(runes) == 0 {
		return
	}
	p = d.Clamp(p)
	line := d.lines[p.Line]
	out := make([]rune, 0, len(line)+len(runes))
	out = append(out, line[:p.Char]...)
	out = append(out, runes...)
	out = append(out, line[p.Char:]...)
	d.lines[p.Line] = out
	d.touch()
}

// SplitLine breaks the line at p. The runes after p move to a new line
// inserted below.
func (d *Document) SplitLine(p Point) {
	p = d.Clamp(p)
	line := d.lines[p.Line]
	tail := append([]rune(nil), line[p.Char:]...)
	d.lines[p.Line] = line[:p.Char:p.Char]
	d.lines = append(d.lines, nil)
	copy(d.lines[p.Line+2:], d.lines[p.Line+1:])
	d.lines[p.Line+1] = tail
	d.touch()
}

// DeleteRune removes the rune at p. At the end of a line it joins the
// next line instead. It reports whether anything was removed.
func (d *Document) DeleteRune(p Point) bool {
	p = d.Clamp(p)
	line := d.lines[p.Line]
	if p.Char < len(line) {
		d.lines[p.Line] = append(line[:p.Char:p.Char], line[p.Char+1:]...)
		d.touch()
		return true
	}
	if p.Line+1 < len(d.lines) {
		d.JoinNext(p.Line)
		return true
	}
	return false
}

// JoinNext appends line i+1 to line i and removes line i+1.
func (d *Document) JoinNext(i int) {
	if i < 0 || i+1 >= len(d.lines) {
		return
	}
	d.lines[i] = append(d.lines[i][:len(d.lines[i]):len(d.lines[i])], d.lines[i+1]...)
	d.lines = append(d.lines[:i+1], d.lines[i+2:]...)
	d.touch()
}

// DeleteRange removes the text between first and last. On one line the runes
// in between are erased; across lines first's prefix is joined with last's
// suffix and the lines in between are removed. The points are ordered and
// clamped first.
func (d *Document) DeleteRange(first, last Point) {
	first, last = Order(d.Clamp(first), d.Clamp(last))
	if first == last {
		return
	}
	head := d.lines[first.Line][:first.Char]
	tail := d.lines[last.Line][last.Char:]
	joined := make([]rune, 0, len(head)+len(tail))
	joined = append(joined, head...)
	joined = append(joined, tail...)
	d.lines[first.Line] = joined
	d.lines = append(d.lines[:first.Line+1], d.lines[last.Line+1:]...)
	d.touch()
}

// Text returns the text between first and last with lines joined by '\n'.
func (d *Document) Text(first, last Point) string {
	first, last = Order(d.Clamp(first), d.Clamp(last))
	if first.Line == last.Line {
		return string(d.lines[first.Line][first.Char:last.Char])
	}
	var sb strings.Builder
	sb.WriteString(string(d.lines[first.Line][first.Char:]))
	for i := first.Line + 1; i < last.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(d.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(d.lines[last.Line][:last.Char]))
	return sb.String()
}

// String returns the whole document with lines joined by '\n'.
func (d *Document) String() string {
	return d.Text(Point{}, d.End())
}
