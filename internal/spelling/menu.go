package spelling

import (
	"errors"
	"fmt"
	"strconv"

	"linguist/internal/trace"
)

// ItemKind tags a dynamic menu entry.
type ItemKind uint8

const (
	// ItemDivider is a separator line.
	ItemDivider ItemKind = iota + 1
	// ItemAction is an entry bound to a command.
	ItemAction
)

// menuItem is one entry created during a context-menu invocation.
type menuItem struct {
	kind      ItemKind
	handle    Handle
	commandID string
	label     string
	// owned marks commands registered for this invocation only; they are
	// unregistered again during cleanup.
	owned bool
}

// MenuItem describes a live dynamic entry.
type MenuItem struct {
	Kind      ItemKind
	CommandID string
	Label     string
}

// Items returns the entries created by the last context-menu invocation.
func (c *Controller) Items() []MenuItem {
	out := make([]MenuItem, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, MenuItem{Kind: it.kind, CommandID: it.commandID, Label: it.label})
	}
	return out
}

// Suggestions returns the replacement candidates found by the last
// context-menu invocation.
func (c *Controller) Suggestions() []string {
	out := make([]string, len(c.suggestions))
	copy(out, c.suggestions)
	return out
}

// OpenContextMenu builds the spelling section of the context menu. Hosts
// reach it through Menu.OnBeforeOpen.
//
// Entries of the previous invocation are removed first, since hosts do not
// reliably report that a menu was closed. When the word under the selection
// is misspelled the menu gains, in order: an optional divider, Ignore All,
// Ignore Once, then one entry per suggestion or the disabled placeholder.
func (c *Controller) OpenContextMenu() {
	if c.busy != nil {
		c.busy.ShowBusy()
		defer c.busy.HideBusy()
	}
	span := trace.Begin(c.tracer, trace.ScopeMenu, "context-menu", 0)

	c.suggestions = nil
	c.Cleanup()

	if c.menu == nil {
		span.End("no menu")
		return
	}
	word, ok := c.ResolveSelection()
	if !ok {
		span.End("invalid selection")
		return
	}
	if c.oracle == nil || c.oracle.IsCorrect(word) {
		span.End("correct")
		return
	}
	c.suggestions = c.oracle.Suggest(word)

	if c.divider {
		c.addDivider()
	}
	c.addAction(IgnoreAllLabel, func() { c.ignoreAll(word) })
	c.addAction(IgnoreOnceLabel, c.ignoreOnce)
	if len(c.suggestions) > 0 {
		for _, s := range c.suggestions {
			c.addAction(s, func() {
				c.ReplaceSelectionWith(s)
				c.menu.Close()
			})
		}
	} else {
		c.addPlaceholder()
	}
	span.WithExtra("word", word).WithExtra("items", strconv.Itoa(len(c.items))).End("misspelled")
}

// addAction registers a fresh command and adds its menu entry. A failure
// leaves no trace of the entry behind.
func (c *Controller) addAction(label string, run func()) {
	id := c.nextCommandID()
	if err := c.menu.RegisterAction(label, id, run); err != nil {
		trace.Failure(c.tracer, trace.ScopeMenu, "register-action", fmt.Errorf("%s: %w", id, err))
		return
	}
	h, err := c.menu.AddItem(id)
	if err != nil {
		trace.Failure(c.tracer, trace.ScopeMenu, "add-item", fmt.Errorf("%s: %w", id, err))
		if uerr := c.menu.UnregisterAction(id); uerr != nil {
			trace.Failure(c.tracer, trace.ScopeMenu, "unregister-action", uerr)
		}
		return
	}
	c.items = append(c.items, menuItem{kind: ItemAction, handle: h, commandID: id, label: label, owned: true})
}

func (c *Controller) addDivider() {
	h, err := c.menu.AddDivider()
	if err != nil {
		trace.Failure(c.tracer, trace.ScopeMenu, "add-divider", err)
		return
	}
	c.items = append(c.items, menuItem{kind: ItemDivider, handle: h})
}

func (c *Controller) addPlaceholder() {
	h, err := c.menu.AddItem(NoSuggestionsCommand)
	if err != nil {
		trace.Failure(c.tracer, trace.ScopeMenu, "add-item", err)
		return
	}
	c.items = append(c.items, menuItem{kind: ItemAction, handle: h, commandID: NoSuggestionsCommand, label: NoSuggestionsLabel})
}

// Cleanup removes every entry created by the previous invocation. Failures
// on one entry are recorded and do not stop removal of the rest; the
// registry is empty afterwards in every case.
func (c *Controller) Cleanup() {
	if len(c.items) == 0 {
		return
	}
	items := c.items
	c.items = nil
	if c.menu == nil {
		return
	}
	var errs []error
	for _, it := range items {
		errs = append(errs, c.removeItem(it))
	}
	if err := errors.Join(errs...); err != nil {
		trace.Failure(c.tracer, trace.ScopeMenu, "cleanup", err)
	}
}

func (c *Controller) removeItem(it menuItem) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("remove %s: host panic: %v", it.commandID, r)
		}
	}()
	switch it.kind {
	case ItemDivider:
		return c.menu.RemoveDivider(it.handle)
	case ItemAction:
		var errs []error
		if rerr := c.menu.RemoveItem(it.handle); rerr != nil {
			errs = append(errs, fmt.Errorf("remove item %s: %w", it.commandID, rerr))
		}
		if it.owned {
			if uerr := c.menu.UnregisterAction(it.commandID); uerr != nil {
				errs = append(errs, fmt.Errorf("unregister %s: %w", it.commandID, uerr))
			}
		}
		return errors.Join(errs...)
	}
	return nil
}
