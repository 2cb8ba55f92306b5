package tui

import (
	"fmt"

	"linguist/internal/spelling"
)

type menuEntry struct {
	handle    spelling.Handle
	commandID string
	divider   bool
}

type command struct {
	label string
	run   func()
}

// popup is the context menu drawn under the caret.
type popup struct {
	next       spelling.Handle
	entries    []menuEntry
	commands   map[string]command
	beforeOpen []func()

	visible bool
	index   int
}

func newPopup() *popup {
	return &popup{commands: make(map[string]command)}
}

func (p *popup) AddItem(commandID string) (spelling.Handle, error) {
	if _, ok := p.commands[commandID]; !ok {
		return 0, fmt.Errorf("unknown command %q", commandID)
	}
	p.next++
	p.entries = append(p.entries, menuEntry{handle: p.next, commandID: commandID})
	return p.next, nil
}

func (p *popup) AddDivider() (spelling.Handle, error) {
	p.next++
	p.entries = append(p.entries, menuEntry{handle: p.next, divider: true})
	return p.next, nil
}

func (p *popup) RemoveItem(h spelling.Handle) error    { return p.remove(h, false) }
func (p *popup) RemoveDivider(h spelling.Handle) error { return p.remove(h, true) }

func (p *popup) remove(h spelling.Handle, divider bool) error {
	for i, e := range p.entries {
		if e.handle == h && e.divider == divider {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown menu entry %d", h)
}

func (p *popup) RegisterAction(label, commandID string, run func()) error {
	if _, ok := p.commands[commandID]; ok {
		return fmt.Errorf("command %q already registered", commandID)
	}
	p.commands[commandID] = command{label: label, run: run}
	return nil
}

func (p *popup) UnregisterAction(commandID string) error {
	if _, ok := p.commands[commandID]; !ok {
		return fmt.Errorf("unknown command %q", commandID)
	}
	delete(p.commands, commandID)
	return nil
}

func (p *popup) Close() { p.visible = false }

func (p *popup) OnBeforeOpen(fn func()) { p.beforeOpen = append(p.beforeOpen, fn) }

// open rebuilds the entries and shows the popup when it has any.
func (p *popup) open() {
	for _, fn := range p.beforeOpen {
		fn()
	}
	p.index = 0
	p.visible = len(p.entries) > 0
	p.skipDividers(1)
}

func (p *popup) label(e menuEntry) string {
	return p.commands[e.commandID].label
}

func (p *popup) enabled(e menuEntry) bool {
	return !e.divider && p.commands[e.commandID].run != nil
}

// moveBy steps the highlight over dividers, stopping at the ends.
func (p *popup) moveBy(delta int) {
	if len(p.entries) == 0 {
		return
	}
	i := p.index + delta
	for i >= 0 && i < len(p.entries) && p.entries[i].divider {
		i += delta
	}
	if i < 0 || i >= len(p.entries) {
		return
	}
	p.index = i
}

func (p *popup) skipDividers(delta int) {
	for p.index < len(p.entries) && p.entries[p.index].divider {
		p.index += delta
	}
}

// activate runs the highlighted entry and hides the popup. Disabled entries
// keep it open.
func (p *popup) activate() {
	if p.index >= len(p.entries) {
		return
	}
	e := p.entries[p.index]
	if !p.enabled(e) {
		return
	}
	p.visible = false
	p.commands[e.commandID].run()
}
