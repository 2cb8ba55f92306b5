// Package textpos defines buffer coordinates and the word-boundary rules
// shared by the spelling engine and its hosts.
package textpos

import "fmt"

// Pos is a location in a buffer. Char counts runes from the start of Line.
type Pos struct {
	Line int `json:"line"`
	Char int `json:"char"`
}

// Less reports whether p is before q.
func (p Pos) Less(q Pos) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Char < q.Char
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Char)
}

// Range is a half-open span [Start, End).
type Range struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

// Region returns the range between two positions in document order.
func Region(a, b Pos) Range {
	if b.Less(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// IsEmpty reports whether the range is a caret.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// SingleLine reports whether the range starts and ends on the same line.
func (r Range) SingleLine() bool {
	return r.Start.Line == r.End.Line
}

// Contains reports whether p lies inside r. The end position is exclusive.
func (r Range) Contains(p Pos) bool {
	return !p.Less(r.Start) && p.Less(r.End)
}

// Overlaps reports whether two non-empty ranges share at least one rune.
func (r Range) Overlaps(o Range) bool {
	return r.Start.Less(o.End) && o.Start.Less(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s-%s]", r.Start, r.End)
}
