package cursor

import (
	"fmt"

	"github.com/dshills/gridedit/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Mark is a position in a document.
type Mark struct {
	Char int
	Line int
	// ColumnMemory is the furthest char index reached during a run of
	// vertical moves. Horizontal moves and edits reset it to 0.
	ColumnMemory int
}

// MarkAt creates a mark at p with no column memory.
func MarkAt(p Point) Mark {
	return Mark{Char: p.Char, Line: p.Line}
}

// Point returns the position of the mark.
func (m Mark) Point() Point {
	return Point{Line: m.Line, Char: m.Char}
}

// String returns a human-readable representation of the mark.
func (m Mark) String() string {
	return fmt.Sprintf("(%d:%d)", m.Line, m.Char)
}

// Compare orders marks by line, then char.
func (m Mark) Compare(other Mark) int {
	return m.Point().Compare(other.Point())
}

// After returns true if m comes after other.
func (m Mark) After(other Mark) bool {
	return m.Compare(other) > 0
}

// Lines is the read access marks need to move.
type Lines interface {
	LineCount() int
	LineLen(i int) int
}

// Clamp returns m moved inside doc. Column memory is kept.
func (m Mark) Clamp(doc Lines) Mark {
	m.Line = min(max(m.Line, 0), doc.LineCount()-1)
	m.Char = min(max(m.Char, 0), doc.LineLen(m.Line))
	return m
}

// Left moves one char left, wrapping to the end of the previous line.
func (m Mark) Left(doc Lines) Mark {
	m.ColumnMemory = 0
	switch {
	case m.Char > 0:
		m.Char--
	case m.Line > 0:
		m.Line--
		m.Char = doc.LineLen(m.Line)
	}
	return m
}

// Right moves one char right, wrapping to the start of the next line.
func (m Mark) Right(doc Lines) Mark {
	m.ColumnMemory = 0
	switch {
	case m.Char < doc.LineLen(m.Line):
		m.Char++
	case m.Line < doc.LineCount()-1:
		m.Line++
		m.Char = 0
	}
	return m
}

// Up moves one line up, restoring the remembered column. On the first line
// it stays put.
func (m Mark) Up(doc Lines) Mark {
	m.ColumnMemory = max(m.ColumnMemory, m.Char)
	if m.Line > 0 {
		m.Line--
		m.Char = min(m.ColumnMemory, doc.LineLen(m.Line))
	}
	return m
}

// Down moves one line down, restoring the remembered column. On the last
// line it moves to the end of the line.
func (m Mark) Down(doc Lines) Mark {
	m.ColumnMemory = max(m.ColumnMemory, m.Char)
	if m.Line < doc.LineCount()-1 {
		m.Line++
		m.Char = min(m.ColumnMemory, doc.LineLen(m.Line))
	} else {
		m.Char = doc.LineLen(m.Line)
	}
	return m
}
