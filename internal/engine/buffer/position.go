package buffer

import "fmt"

// Point represents a line and character position.
// Both Line and Char are 0-indexed; Char counts runes within the line.
type Point struct {
	Line int
	Char int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Char)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Char < other.Char {
		return -1
	}
	if p.Char > other.Char {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero point (0:0).
func (p Point) IsZero() bool {
	return p.Line == 0 && p.Char == 0
}

// Order returns a and b sorted so that first <= last.
func Order(a, b Point) (first, last Point) {
	if a.After(b) {
		return b, a
	}
	return a, b
}

// Revision identifies a document state. Every mutation produces a new
// revision; comparing revisions tells whether the document changed since a
// save.
type Revision uint64
