package lsp

import (
	"linguist/internal/textbuf"
	"linguist/internal/textpos"
)

// Clients count characters in UTF-16 code units; buffers count runes.

func utf16Width(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// toBufferPos converts a client position, clamping it into buf.
func toBufferPos(buf *textbuf.Buffer, pos position) textpos.Pos {
	if pos.Line < 0 {
		return textpos.Pos{}
	}
	if pos.Line >= buf.LineCount() {
		last := buf.LineCount() - 1
		return textpos.Pos{Line: last, Char: buf.LineLen(last)}
	}
	units := 0
	ch := 0
	for _, r := range buf.Line(pos.Line) {
		w := utf16Width(r)
		if units+w > pos.Character {
			break
		}
		units += w
		ch++
	}
	return textpos.Pos{Line: pos.Line, Char: ch}
}

// toClientPos converts a buffer position to UTF-16 units.
func toClientPos(buf *textbuf.Buffer, p textpos.Pos) position {
	p = buf.Clamp(p)
	units := 0
	for i, r := range []rune(buf.Line(p.Line)) {
		if i >= p.Char {
			break
		}
		units += utf16Width(r)
	}
	return position{Line: p.Line, Character: units}
}

func toBufferRange(buf *textbuf.Buffer, r lspRange) textpos.Range {
	return textpos.Region(toBufferPos(buf, r.Start), toBufferPos(buf, r.End))
}

func toClientRange(buf *textbuf.Buffer, r textpos.Range) lspRange {
	return lspRange{Start: toClientPos(buf, r.Start), End: toClientPos(buf, r.End)}
}

// applyChanges applies incremental or full-text changes in order.
func applyChanges(buf *textbuf.Buffer, changes []textDocumentContentChangeEvent) {
	for _, change := range changes {
		if change.Range == nil {
			buf.SetText(change.Text)
			continue
		}
		buf.Replace(toBufferRange(buf, *change.Range), change.Text)
	}
}
