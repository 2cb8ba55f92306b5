package spelling

import (
	"strconv"
	"time"

	"linguist/internal/trace"
)

// ModePolicy reports whether documents in the named mode are spell checked.
type ModePolicy func(mode string) bool

// AllModes accepts every mode.
func AllModes(string) bool { return true }

// OnlyModes accepts the listed modes. An empty list accepts every mode.
func OnlyModes(modes ...string) ModePolicy {
	if len(modes) == 0 {
		return AllModes
	}
	set := make(map[string]struct{}, len(modes))
	for _, m := range modes {
		set[m] = struct{}{}
	}
	return func(mode string) bool {
		_, ok := set[mode]
		return ok
	}
}

// Inputs are everything reconciliation depends on for one document.
type Inputs struct {
	Enabled       bool
	ModeValid     bool
	Attached      bool
	ForcedRefresh bool
}

// Plan is the set of view operations reconciliation asks for, applied in
// the order Detach, Attach, Refresh.
type Plan struct {
	Detach  bool
	Attach  bool
	Refresh bool
}

// Reconcile decides how the overlay of one document must change.
//
// A forced refresh detaches the overlay and lets it be attached again in the
// same pass, so cached decorations are rebuilt at once. Any other reason to
// hide the overlay detaches it and redraws the view.
func Reconcile(in Inputs) Plan {
	var p Plan
	attached := in.Attached
	if !in.ModeValid || in.ForcedRefresh || !in.Enabled {
		if attached {
			p.Detach = true
			if in.ForcedRefresh {
				attached = false
			} else {
				p.Refresh = true
			}
		}
		if !in.ForcedRefresh {
			return p
		}
	}
	if in.Enabled && in.ModeValid && !attached {
		p.Attach = true
		p.Refresh = true
	}
	return p
}

// SetEnabled turns spell checking on or off. The interface is only
// reconciled when the value changes.
func (c *Controller) SetEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	trace.Point(c.tracer, trace.ScopeController, "set-enabled", strconv.FormatBool(enabled))
	c.UpdateInterface()
}

// Enabled reports whether spell checking is on.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// SetLocale forwards the dictionary locale to the oracle. It does not touch
// the overlay; call RequestRefresh and UpdateInterface to show the effect.
func (c *Controller) SetLocale(name string) {
	if c.oracle != nil {
		c.oracle.SetLocaleName(name)
	}
	trace.Point(c.tracer, trace.ScopeController, "set-locale", name)
}

// RequestRefresh asks the next reconciliation of documentID to rebuild its
// overlay. The request is consumed by that reconciliation.
func (c *Controller) RequestRefresh(documentID string) {
	if documentID == "" {
		return
	}
	c.refresh[documentID] = true
}

// UpdateInterface reconciles the overlay of the active document with the
// current state. It is a no-op when no document is active.
func (c *Controller) UpdateInterface() {
	ed := c.activeEditor()
	if ed == nil {
		return
	}
	id := ed.DocumentID()
	mode := ed.ModeName()
	if c.oracle != nil {
		c.oracle.SetModeName(mode)
	}

	forced := c.refresh[id]
	delete(c.refresh, id)

	in := Inputs{
		Enabled:       c.enabled,
		ModeValid:     c.modeValid(mode),
		Attached:      ed.HasOverlay(),
		ForcedRefresh: forced,
	}
	plan := Reconcile(in)
	if plan.Detach {
		ed.SetStyleSelectedText(false)
		ed.RemoveOverlay()
	}
	if plan.Attach {
		ed.SetStyleSelectedText(true)
		ed.AddOverlay()
	}
	if plan.Refresh {
		ed.Refresh()
	}
	if plan != (Plan{}) && c.tracer.Enabled() {
		c.tracer.Emit(&trace.Event{
			Time:  time.Now(),
			Kind:  trace.KindPoint,
			Scope: trace.ScopeController,
			Name:  "update-interface",
			Extra: map[string]string{
				"document": id,
				"detach":   strconv.FormatBool(plan.Detach),
				"attach":   strconv.FormatBool(plan.Attach),
				"forced":   strconv.FormatBool(forced),
			},
		})
	}
}
