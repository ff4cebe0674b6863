package cursor

import "fmt"

// Selection is the primary mark plus an optional selection anchor.
type Selection struct {
	Primary Mark
	Anchor  Mark
	Active  bool
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if !s.Active {
		return s.Primary.String()
	}
	return fmt.Sprintf("%s-%s", s.Primary, s.Anchor)
}

// Range returns the selected marks ordered so that first <= last. Without an
// active selection both are the primary mark.
func (s Selection) Range() (first, last Mark) {
	if !s.Active {
		return s.Primary, s.Primary
	}
	if s.Primary.After(s.Anchor) {
		return s.Anchor, s.Primary
	}
	return s.Primary, s.Anchor
}

// IsEmpty returns true if nothing is selected.
func (s Selection) IsEmpty() bool {
	return !s.Active || s.Primary.Compare(s.Anchor) == 0
}

// Head returns the mark that moves: the anchor while selecting, otherwise
// the primary mark.
func (s Selection) Head() Mark {
	if s.Active {
		return s.Anchor
	}
	return s.Primary
}

// Begin starts a selection at the primary mark. It is a no-op when a
// selection is already active.
func (s *Selection) Begin() {
	if s.Active {
		return
	}
	s.Anchor = s.Primary
	s.Active = true
}

// Collapse ends the selection and places the primary mark at m.
func (s *Selection) Collapse(m Mark) {
	s.Primary = m
	s.Anchor = m
	s.Active = false
}
