package spelling

import (
	"errors"
	"fmt"

	"linguist/internal/trace"
)

// ErrStaleRange reports an action aimed at a range recorded on a document
// that is no longer active.
var ErrStaleRange = errors.New("active range belongs to another document")

// ignoreAll accepts word for the rest of the session and rebuilds the
// overlay of the active document so its decorations disappear at once.
func (c *Controller) ignoreAll(word string) {
	if c.oracle != nil {
		c.oracle.IgnoreWord(word)
	}
	trace.Point(c.tracer, trace.ScopeMenu, "ignore-all", word)
	if ed := c.activeEditor(); ed != nil {
		c.RequestRefresh(ed.DocumentID())
	}
	c.UpdateInterface()
}

// ignoreOnce exempts the active range from decorations. The oracle is not
// involved, so the same word elsewhere stays flagged.
func (c *Controller) ignoreOnce() {
	ed, err := c.targetEditor()
	if err != nil {
		trace.Failure(c.tracer, trace.ScopeMenu, "ignore-once", err)
		return
	}
	if ed == nil {
		return
	}
	r := c.active.Range()
	ed.MarkIgnored(r)
	trace.Point(c.tracer, trace.ScopeMenu, "ignore-once", r.String())
	if ed.HasOverlay() {
		ed.Refresh()
	}
}

// ReplaceSelectionWith replaces the active range with word. Nothing happens
// when no range is recorded or the range was taken on another document.
func (c *Controller) ReplaceSelectionWith(word string) {
	ed, err := c.targetEditor()
	if err != nil {
		trace.Failure(c.tracer, trace.ScopeMenu, "replace", err)
		return
	}
	if ed == nil {
		return
	}
	r := c.active.Range()
	ed.ReplaceRange(r, word)
	trace.Point(c.tracer, trace.ScopeMenu, "replace", fmt.Sprintf("%s -> %q", r, word))
}

// targetEditor returns the editor the active range applies to. A nil editor
// with a nil error means there is nothing to act on.
func (c *Controller) targetEditor() (Editor, error) {
	ed := c.activeEditor()
	if ed == nil || !c.hasActive {
		return nil, nil
	}
	if id := ed.DocumentID(); id != c.active.DocumentID {
		return nil, fmt.Errorf("%w: recorded on %s, active is %s", ErrStaleRange, c.active.DocumentID, id)
	}
	return ed, nil
}
