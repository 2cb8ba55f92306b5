package lsp

import (
	"fmt"

	"linguist/internal/spelling"
)

type menuEntry struct {
	handle    spelling.Handle
	commandID string
	divider   bool
}

type menuAction struct {
	label string
	run   func()
}

// menuHost is the context menu as seen by the controller. Its entries become
// the code actions of the request that opened it.
type menuHost struct {
	next       spelling.Handle
	entries    []menuEntry
	actions    map[string]menuAction
	beforeOpen []func()
	closes     int
}

func newMenuHost() *menuHost {
	return &menuHost{actions: make(map[string]menuAction)}
}

func (m *menuHost) AddItem(commandID string) (spelling.Handle, error) {
	if _, ok := m.actions[commandID]; !ok {
		return 0, fmt.Errorf("command %q is not registered", commandID)
	}
	m.next++
	m.entries = append(m.entries, menuEntry{handle: m.next, commandID: commandID})
	return m.next, nil
}

func (m *menuHost) AddDivider() (spelling.Handle, error) {
	m.next++
	m.entries = append(m.entries, menuEntry{handle: m.next, divider: true})
	return m.next, nil
}

func (m *menuHost) remove(h spelling.Handle, divider bool) error {
	for i, e := range m.entries {
		if e.handle == h && e.divider == divider {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no menu entry with handle %d", h)
}

func (m *menuHost) RemoveItem(h spelling.Handle) error    { return m.remove(h, false) }
func (m *menuHost) RemoveDivider(h spelling.Handle) error { return m.remove(h, true) }

func (m *menuHost) RegisterAction(label, commandID string, run func()) error {
	if _, dup := m.actions[commandID]; dup {
		return fmt.Errorf("command %q already registered", commandID)
	}
	m.actions[commandID] = menuAction{label: label, run: run}
	return nil
}

func (m *menuHost) UnregisterAction(commandID string) error {
	if _, ok := m.actions[commandID]; !ok {
		return fmt.Errorf("command %q is not registered", commandID)
	}
	delete(m.actions, commandID)
	return nil
}

// Close has nothing to do: clients dismiss the code-action list themselves.
func (m *menuHost) Close() { m.closes++ }

func (m *menuHost) OnBeforeOpen(fn func()) { m.beforeOpen = append(m.beforeOpen, fn) }

func (m *menuHost) open() {
	for _, fn := range m.beforeOpen {
		fn()
	}
}

// run executes a registered command. ok is false for unknown commands and
// for disabled entries.
func (m *menuHost) run(commandID string) (ok bool) {
	a, found := m.actions[commandID]
	if !found || a.run == nil {
		return false
	}
	a.run()
	return true
}

// codeActions renders the live entries. Dividers have no code-action form.
func (m *menuHost) codeActions() []codeAction {
	out := make([]codeAction, 0, len(m.entries))
	for _, e := range m.entries {
		if e.divider {
			continue
		}
		a := m.actions[e.commandID]
		ca := codeAction{Title: a.label, Kind: "quickfix"}
		if a.run == nil {
			ca.Disabled = &codeActionDisabled{Reason: a.label}
		} else {
			ca.Command = &command{Title: a.label, Command: RunCommand, Arguments: []any{e.commandID}}
		}
		out = append(out, ca)
	}
	return out
}
