package spelling

import (
	"errors"
	"strings"

	"linguist/internal/textbuf"
	"linguist/internal/textpos"
)

type fakeOracle struct {
	wrong       map[string][]string
	ignored     map[string]bool
	locale      string
	mode        string
	suggestHits int
}

func newFakeOracle(wrong map[string][]string) *fakeOracle {
	return &fakeOracle{wrong: wrong, ignored: make(map[string]bool)}
}

func (o *fakeOracle) IsCorrect(word string) bool {
	if o.ignored[word] {
		return true
	}
	_, bad := o.wrong[word]
	return !bad
}

func (o *fakeOracle) Suggest(word string) []string {
	o.suggestHits++
	return o.wrong[word]
}

func (o *fakeOracle) IgnoreWord(word string)    { o.ignored[word] = true }
func (o *fakeOracle) SetLocaleName(name string) { o.locale = name }
func (o *fakeOracle) SetModeName(name string)   { o.mode = name }

type fakeEditor struct {
	id      string
	mode    string
	buf     *textbuf.Buffer
	sels    []textpos.Range
	overlay bool
	styled  bool

	adds, removes, refreshes int
}

func newFakeEditor(id, text string) *fakeEditor {
	return &fakeEditor{id: id, mode: "text", buf: textbuf.New(text)}
}

func (e *fakeEditor) caret(line, ch int) {
	p := textpos.Pos{Line: line, Char: ch}
	e.sels = []textpos.Range{{Start: p, End: p}}
}

func (e *fakeEditor) sel(l1, c1, l2, c2 int) {
	e.sels = []textpos.Range{{Start: textpos.Pos{Line: l1, Char: c1}, End: textpos.Pos{Line: l2, Char: c2}}}
}

func (e *fakeEditor) DocumentID() string                     { return e.id }
func (e *fakeEditor) ModeName() string                       { return e.mode }
func (e *fakeEditor) Selections() []textpos.Range            { return e.sels }
func (e *fakeEditor) Text(r textpos.Range) string            { return e.buf.Slice(r) }
func (e *fakeEditor) WordAt(p textpos.Pos) textpos.Range     { return e.buf.WordAt(p) }
func (e *fakeEditor) ReplaceRange(r textpos.Range, s string) { e.buf.Replace(r, s) }
func (e *fakeEditor) MarkIgnored(r textpos.Range)            { e.buf.Mark(r) }
func (e *fakeEditor) HasOverlay() bool                       { return e.overlay }
func (e *fakeEditor) AddOverlay()                            { e.overlay = true; e.adds++ }
func (e *fakeEditor) RemoveOverlay()                         { e.overlay = false; e.removes++ }
func (e *fakeEditor) SetStyleSelectedText(on bool)           { e.styled = on }
func (e *fakeEditor) Refresh()                               { e.refreshes++ }

type fakeWorkspace struct {
	active *fakeEditor
}

func (w *fakeWorkspace) ActiveEditor() Editor {
	if w.active == nil {
		return nil
	}
	return w.active
}

var errUnknownHandle = errors.New("unknown handle")

type fakeEntry struct {
	handle    Handle
	commandID string
	divider   bool
}

type fakeMenu struct {
	next     Handle
	entries  []fakeEntry
	commands map[string]string
	runs     map[string]func()
	open     func()
	closed   int

	failRemove   map[Handle]bool
	panicRemove  map[Handle]bool
	failRegister bool
}

func newFakeMenu() *fakeMenu {
	return &fakeMenu{
		commands:    make(map[string]string),
		runs:        make(map[string]func()),
		failRemove:  make(map[Handle]bool),
		panicRemove: make(map[Handle]bool),
	}
}

func (m *fakeMenu) AddItem(commandID string) (Handle, error) {
	if _, ok := m.commands[commandID]; !ok {
		return 0, errors.New("unknown command " + commandID)
	}
	m.next++
	m.entries = append(m.entries, fakeEntry{handle: m.next, commandID: commandID})
	return m.next, nil
}

func (m *fakeMenu) AddDivider() (Handle, error) {
	m.next++
	m.entries = append(m.entries, fakeEntry{handle: m.next, divider: true})
	return m.next, nil
}

func (m *fakeMenu) remove(h Handle) error {
	if m.panicRemove[h] {
		panic("menu host exploded")
	}
	for i, e := range m.entries {
		if e.handle == h {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			if m.failRemove[h] {
				return errUnknownHandle
			}
			return nil
		}
	}
	return errUnknownHandle
}

func (m *fakeMenu) RemoveItem(h Handle) error    { return m.remove(h) }
func (m *fakeMenu) RemoveDivider(h Handle) error { return m.remove(h) }

func (m *fakeMenu) RegisterAction(label, commandID string, run func()) error {
	if m.failRegister {
		return errors.New("register refused")
	}
	if _, dup := m.commands[commandID]; dup {
		return errors.New("duplicate command " + commandID)
	}
	m.commands[commandID] = label
	m.runs[commandID] = run
	return nil
}

func (m *fakeMenu) UnregisterAction(commandID string) error {
	if _, ok := m.commands[commandID]; !ok {
		return errors.New("unknown command " + commandID)
	}
	delete(m.commands, commandID)
	delete(m.runs, commandID)
	return nil
}

func (m *fakeMenu) Close()                 { m.closed++ }
func (m *fakeMenu) OnBeforeOpen(fn func()) { m.open = fn }

// labels lists the visible entries, dividers as "-".
func (m *fakeMenu) labels() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if e.divider {
			out = append(out, "-")
			continue
		}
		out = append(out, m.commands[e.commandID])
	}
	return out
}

// activate runs the entry with the given label.
func (m *fakeMenu) activate(label string) bool {
	for _, e := range m.entries {
		if e.divider || m.commands[e.commandID] != label {
			continue
		}
		run := m.runs[e.commandID]
		if run == nil {
			return false
		}
		run()
		return true
	}
	return false
}

type fakeBusy struct{ shown, hidden int }

func (b *fakeBusy) ShowBusy() { b.shown++ }
func (b *fakeBusy) HideBusy() { b.hidden++ }

type fixture struct {
	oracle *fakeOracle
	ed     *fakeEditor
	ws     *fakeWorkspace
	menu   *fakeMenu
	busy   *fakeBusy
	c      *Controller
}

func newFixture(text string, wrong map[string][]string) *fixture {
	f := &fixture{
		oracle: newFakeOracle(wrong),
		ed:     newFakeEditor("doc-1", text),
		menu:   newFakeMenu(),
		busy:   &fakeBusy{},
	}
	f.ws = &fakeWorkspace{active: f.ed}
	f.c = New(Options{Oracle: f.oracle, Workspace: f.ws, Busy: f.busy})
	if err := f.c.Attach(f.menu); err != nil {
		panic(err)
	}
	return f
}

func joined(s []string) string {
	return strings.Join(s, "|")
}
