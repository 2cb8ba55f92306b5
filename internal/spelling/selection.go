package spelling

import (
	"linguist/internal/textpos"
	"linguist/internal/trace"
)

// ActiveRange is the text targeted by the ignore and replace actions: the
// selection that produced the current context menu.
type ActiveRange struct {
	DocumentID string
	Line       int
	Start      textpos.Pos
	End        textpos.Pos
}

// Range returns the buffer range covered by a.
func (a ActiveRange) Range() textpos.Range {
	return textpos.Range{Start: a.Start, End: a.End}
}

// ActiveRange returns the range recorded by the last successful selection.
func (c *Controller) ActiveRange() (ActiveRange, bool) {
	return c.active, c.hasActive
}

// ResolveSelection returns the single word targeted by the active editor's
// selection. A caret selects the word around it; a non-empty selection is
// taken verbatim. The selection is rejected when there are several ranges,
// when it spans lines, or when its text holds a word separator.
//
// The active range is recorded as soon as a single-line selection is seen,
// before the separator check, and is cleared when the selection shape is
// rejected.
func (c *Controller) ResolveSelection() (string, bool) {
	ed := c.activeEditor()
	if ed == nil {
		c.hasActive = false
		return "", false
	}
	sels := ed.Selections()
	if len(sels) != 1 {
		c.rejectSelection("selection count")
		return "", false
	}
	sel := textpos.Region(sels[0].Start, sels[0].End)
	if !sel.SingleLine() {
		c.rejectSelection("multi-line selection")
		return "", false
	}

	target := sel
	if sel.IsEmpty() {
		target = ed.WordAt(sel.Start)
	}
	text := ed.Text(target)
	c.active = ActiveRange{
		DocumentID: ed.DocumentID(),
		Line:       sel.Start.Line,
		Start:      target.Start,
		End:        target.End,
	}
	c.hasActive = true

	if text == "" || textpos.ContainsWordSeparator(text) {
		trace.Point(c.tracer, trace.ScopeMenu, "invalid-selection", "word separator")
		return "", false
	}
	return text, true
}

func (c *Controller) rejectSelection(reason string) {
	c.hasActive = false
	trace.Point(c.tracer, trace.ScopeMenu, "invalid-selection", reason)
}
