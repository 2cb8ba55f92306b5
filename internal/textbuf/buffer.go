// Package textbuf is the line-oriented document buffer behind the editor
// hosts. It tracks ignore marks placed by the spelling engine and keeps them
// anchored to their text across edits.
package textbuf

import (
	"strings"

	"linguist/internal/textpos"
)

// Buffer holds a document as lines of runes.
type Buffer struct {
	lines [][]rune
	marks []textpos.Range
}

// New creates a buffer from text. Line breaks are "\n"; a trailing "\r" on a
// line is kept as content.
func New(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text)
	return b
}

// SetText replaces the whole content and drops every mark.
func (b *Buffer) SetText(text string) {
	parts := strings.Split(text, "\n")
	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	b.marks = nil
}

// Text returns the whole content.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// LineCount returns the number of lines; an empty buffer has one line.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the content of line n, or "" when n is out of range.
func (b *Buffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return string(b.lines[n])
}

// LineLen returns the rune length of line n.
func (b *Buffer) LineLen(n int) int {
	if n < 0 || n >= len(b.lines) {
		return 0
	}
	return len(b.lines[n])
}

// Clamp moves p to the nearest valid position.
func (b *Buffer) Clamp(p textpos.Pos) textpos.Pos {
	if p.Line < 0 {
		return textpos.Pos{}
	}
	if p.Line >= len(b.lines) {
		last := len(b.lines) - 1
		return textpos.Pos{Line: last, Char: len(b.lines[last])}
	}
	if p.Char < 0 {
		p.Char = 0
	}
	if p.Char > len(b.lines[p.Line]) {
		p.Char = len(b.lines[p.Line])
	}
	return p
}

// Slice returns the text covered by r.
func (b *Buffer) Slice(r textpos.Range) string {
	start, end := b.Clamp(r.Start), b.Clamp(r.End)
	if end.Less(start) {
		start, end = end, start
	}
	if start.Line == end.Line {
		return string(b.lines[start.Line][start.Char:end.Char])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Line][start.Char:]))
	for ln := start.Line + 1; ln < end.Line; ln++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[ln]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Line][:end.Char]))
	return sb.String()
}

// WordAt returns the word boundaries around a caret.
func (b *Buffer) WordAt(p textpos.Pos) textpos.Range {
	p = b.Clamp(p)
	start, end := textpos.WordAt(b.lines[p.Line], p.Char)
	return textpos.Range{
		Start: textpos.Pos{Line: p.Line, Char: start},
		End:   textpos.Pos{Line: p.Line, Char: end},
	}
}

// Replace swaps the text in r for text and returns the range now occupied by
// the inserted text. Marks overlapping r are dropped; marks after r move with
// the text.
func (b *Buffer) Replace(r textpos.Range, text string) textpos.Range {
	start, end := b.Clamp(r.Start), b.Clamp(r.End)
	if end.Less(start) {
		start, end = end, start
	}
	head := append([]rune(nil), b.lines[start.Line][:start.Char]...)
	tail := append([]rune(nil), b.lines[end.Line][end.Char:]...)

	parts := strings.Split(text, "\n")
	inserted := make([][]rune, len(parts))
	for i, p := range parts {
		inserted[i] = []rune(p)
	}
	last := len(inserted) - 1
	newEnd := textpos.Pos{Line: start.Line + last, Char: len(inserted[last])}
	if last == 0 {
		newEnd.Char += start.Char
	}
	inserted[0] = append(head, inserted[0]...)
	inserted[last] = append(inserted[last], tail...)

	lines := make([][]rune, 0, len(b.lines)-(end.Line-start.Line)+last)
	lines = append(lines, b.lines[:start.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, b.lines[end.Line+1:]...)
	b.lines = lines

	b.shiftMarks(textpos.Range{Start: start, End: end}, newEnd)
	return textpos.Range{Start: start, End: newEnd}
}

// Words calls fn for every maximal run of word runes, in document order.
func (b *Buffer) Words(fn func(r textpos.Range, word string)) {
	for ln, line := range b.lines {
		for i := 0; i < len(line); {
			if !textpos.IsWordRune(line[i]) {
				i++
				continue
			}
			j := i
			for j < len(line) && textpos.IsWordRune(line[j]) {
				j++
			}
			fn(textpos.Range{
				Start: textpos.Pos{Line: ln, Char: i},
				End:   textpos.Pos{Line: ln, Char: j},
			}, string(line[i:j]))
			i = j
		}
	}
}
