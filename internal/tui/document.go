package tui

import (
	"path/filepath"
	"strings"

	"linguist/internal/spelling"
	"linguist/internal/textbuf"
	"linguist/internal/textpos"
)

// document is the single open file together with its view state.
type document struct {
	path string
	mode string
	buf  *textbuf.Buffer

	cursor textpos.Pos
	// anchor is the fixed end of the selection; nil means a bare caret.
	anchor *textpos.Pos

	oracle     spelling.Oracle
	overlay    bool
	styled     bool
	misspelled []textpos.Range
	modified   bool
}

func newDocument(path, text string, oracle spelling.Oracle) *document {
	return &document{
		path:   path,
		mode:   modeOf(path),
		buf:    textbuf.New(text),
		oracle: oracle,
	}
}

func modeOf(path string) string {
	switch ext := strings.TrimPrefix(filepath.Ext(path), "."); ext {
	case "", "txt":
		return "plaintext"
	case "md":
		return "markdown"
	default:
		return ext
	}
}

func (d *document) DocumentID() string { return d.path }
func (d *document) ModeName() string   { return d.mode }

func (d *document) Selections() []textpos.Range {
	if d.anchor == nil {
		return []textpos.Range{{Start: d.cursor, End: d.cursor}}
	}
	return []textpos.Range{textpos.Region(*d.anchor, d.cursor)}
}

func (d *document) Text(r textpos.Range) string        { return d.buf.Slice(r) }
func (d *document) WordAt(p textpos.Pos) textpos.Range { return d.buf.WordAt(p) }

func (d *document) ReplaceRange(r textpos.Range, text string) {
	got := d.buf.Replace(r, text)
	d.cursor = got.End
	d.anchor = nil
	d.modified = true
	d.recheck()
}

func (d *document) MarkIgnored(r textpos.Range) { d.buf.Mark(r) }

func (d *document) HasOverlay() bool { return d.overlay }
func (d *document) AddOverlay()      { d.overlay = true }

func (d *document) RemoveOverlay() {
	d.overlay = false
	d.misspelled = nil
}

func (d *document) SetStyleSelectedText(on bool) { d.styled = on }

// Refresh rebuilds the decorations from the buffer.
func (d *document) Refresh() { d.recheck() }

func (d *document) recheck() {
	d.misspelled = d.misspelled[:0]
	if !d.overlay || d.oracle == nil {
		return
	}
	d.buf.Words(func(r textpos.Range, word string) {
		if d.buf.Marked(r) || d.oracle.IsCorrect(word) {
			return
		}
		d.misspelled = append(d.misspelled, r)
	})
}

// selection returns the selected range and whether it is non-empty.
func (d *document) selection() (textpos.Range, bool) {
	if d.anchor == nil {
		return textpos.Range{Start: d.cursor, End: d.cursor}, false
	}
	r := textpos.Region(*d.anchor, d.cursor)
	return r, !r.IsEmpty()
}

// insert replaces the selection, or inserts at the caret.
func (d *document) insert(text string) {
	r, _ := d.selection()
	d.ReplaceRange(r, text)
}

// deleteBack removes the selection, or the rune before the caret.
func (d *document) deleteBack() {
	r, ok := d.selection()
	if !ok {
		if d.cursor.Char > 0 {
			r.Start.Char--
		} else if d.cursor.Line > 0 {
			prev := d.cursor.Line - 1
			r.Start = textpos.Pos{Line: prev, Char: d.buf.LineLen(prev)}
		} else {
			return
		}
	}
	d.ReplaceRange(r, "")
}

// move shifts the caret. extend keeps or starts a selection.
func (d *document) move(dLine, dChar int, extend bool) {
	if extend && d.anchor == nil {
		a := d.cursor
		d.anchor = &a
	}
	if !extend {
		d.anchor = nil
	}
	p := d.cursor
	switch {
	case dChar < 0 && p.Char == 0 && p.Line > 0:
		p = textpos.Pos{Line: p.Line - 1, Char: d.buf.LineLen(p.Line - 1)}
	case dChar > 0 && p.Char >= d.buf.LineLen(p.Line) && p.Line+1 < d.buf.LineCount():
		p = textpos.Pos{Line: p.Line + 1}
	default:
		p.Line += dLine
		p.Char += dChar
	}
	d.cursor = d.buf.Clamp(p)
}

// decorated reports, per rune of line ln, whether it belongs to a misspelled
// word.
func (d *document) decorated(ln int) []bool {
	n := d.buf.LineLen(ln)
	out := make([]bool, n)
	for _, r := range d.misspelled {
		if r.Start.Line != ln {
			continue
		}
		for i := r.Start.Char; i < r.End.Char && i < n; i++ {
			out[i] = true
		}
	}
	return out
}
