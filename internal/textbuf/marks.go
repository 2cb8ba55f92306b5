package textbuf

import "linguist/internal/textpos"

// Mark records r as exempt from spelling decorations.
func (b *Buffer) Mark(r textpos.Range) {
	r = textpos.Region(b.Clamp(r.Start), b.Clamp(r.End))
	if r.IsEmpty() {
		return
	}
	for _, m := range b.marks {
		if m == r {
			return
		}
	}
	b.marks = append(b.marks, r)
}

// Marked reports whether r lies entirely inside a mark.
func (b *Buffer) Marked(r textpos.Range) bool {
	for _, m := range b.marks {
		if !r.Start.Less(m.Start) && !m.End.Less(r.End) {
			return true
		}
	}
	return false
}

// Marks returns a copy of the current marks.
func (b *Buffer) Marks() []textpos.Range {
	out := make([]textpos.Range, len(b.marks))
	copy(out, b.marks)
	return out
}

// ClearMarks drops every mark.
func (b *Buffer) ClearMarks() {
	b.marks = nil
}

// shiftMarks updates marks after the text in edited was replaced by text
// ending at newEnd.
func (b *Buffer) shiftMarks(edited textpos.Range, newEnd textpos.Pos) {
	if len(b.marks) == 0 {
		return
	}
	kept := b.marks[:0]
	for _, m := range b.marks {
		switch {
		case !edited.Start.Less(m.End):
			kept = append(kept, m)
		case !m.Start.Less(edited.End):
			kept = append(kept, textpos.Range{
				Start: shiftPos(m.Start, edited.End, newEnd),
				End:   shiftPos(m.End, edited.End, newEnd),
			})
		}
	}
	b.marks = kept
}

func shiftPos(p, oldEnd, newEnd textpos.Pos) textpos.Pos {
	if p.Line == oldEnd.Line {
		return textpos.Pos{Line: newEnd.Line, Char: newEnd.Char + p.Char - oldEnd.Char}
	}
	return textpos.Pos{Line: p.Line + newEnd.Line - oldEnd.Line, Char: p.Char}
}
