// Package tui is a small terminal editor that hosts the spelling engine.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"linguist/internal/spelling"
	"linguist/internal/trace"
)

// Options configures the editor.
type Options struct {
	Path string
	Text string

	Oracle  spelling.Oracle
	Enabled bool
	Modes   spelling.ModePolicy
	Divider bool
	Tracer  trace.Tracer

	// Save writes the buffer back. Nil writes Path with mode 0o644.
	Save func(path, text string) error
}

// Model is the Bubble Tea model of the editor.
type Model struct {
	doc   *document
	ctrl  *spelling.Controller
	popup *popup
	keys  keyMap
	save  func(path, text string) error

	spinner spinner.Model
	busy    bool
	pending bool

	width, height int
	status        string
	quitting      bool
}

type openMenuMsg struct{}

// New opens text in an editor bound to a fresh spelling controller.
func New(opts Options) (*Model, error) {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	save := opts.Save
	if save == nil {
		save = func(path, text string) error {
			return os.WriteFile(path, []byte(text), 0o644)
		}
	}
	m := &Model{
		doc:     newDocument(opts.Path, opts.Text, opts.Oracle),
		popup:   newPopup(),
		keys:    defaultKeys(),
		save:    save,
		spinner: sp,
		width:   80,
		height:  24,
	}
	m.ctrl = spelling.New(spelling.Options{
		Oracle:    opts.Oracle,
		Workspace: m,
		Busy:      m,
		ModeValid: opts.Modes,
		Divider:   opts.Divider,
		Tracer:    opts.Tracer,
	})
	if err := m.ctrl.Attach(m.popup); err != nil {
		return nil, fmt.Errorf("attach menu: %w", err)
	}
	m.ctrl.SetEnabled(opts.Enabled)
	return m, nil
}

// ActiveEditor implements spelling.Workspace.
func (m *Model) ActiveEditor() spelling.Editor { return m.doc }

func (m *Model) ShowBusy() { m.busy = true }
func (m *Model) HideBusy() { m.busy = false }

// Text returns the current buffer contents.
func (m *Model) Text() string { return m.doc.buf.Text() }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		return m, nil
	case spinner.TickMsg:
		if !m.pending && !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case openMenuMsg:
		m.pending = false
		m.popup.open()
		if !m.popup.visible {
			m.status = "no spelling suggestions here"
		}
		return m, nil
	case tea.KeyMsg:
		if m.popup.visible {
			return m, m.menuKey(msg)
		}
		return m, m.editKey(msg)
	}
	return m, nil
}

func (m *Model) menuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.popup.moveBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.popup.moveBy(1)
	case key.Matches(msg, m.keys.Enter):
		m.popup.activate()
	case key.Matches(msg, m.keys.Close):
		m.popup.Close()
	}
	return nil
}

func (m *Model) editKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Save):
		if err := m.save(m.doc.path, m.doc.buf.Text()); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return nil
		}
		m.doc.modified = false
		m.status = "saved " + m.doc.path
	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.SetEnabled(!m.ctrl.Enabled())
		if m.ctrl.Enabled() {
			m.status = "spell check on"
		} else {
			m.status = "spell check off"
		}
	case key.Matches(msg, m.keys.Menu):
		m.pending = true
		return tea.Batch(m.spinner.Tick, func() tea.Msg { return openMenuMsg{} })
	case key.Matches(msg, m.keys.Left):
		m.doc.move(0, -1, false)
	case key.Matches(msg, m.keys.Right):
		m.doc.move(0, 1, false)
	case key.Matches(msg, m.keys.Up):
		m.doc.move(-1, 0, false)
	case key.Matches(msg, m.keys.Down):
		m.doc.move(1, 0, false)
	case key.Matches(msg, m.keys.SelLeft):
		m.doc.move(0, -1, true)
	case key.Matches(msg, m.keys.SelRight):
		m.doc.move(0, 1, true)
	case key.Matches(msg, m.keys.SelUp):
		m.doc.move(-1, 0, true)
	case key.Matches(msg, m.keys.SelDown):
		m.doc.move(1, 0, true)
	case key.Matches(msg, m.keys.Backspace):
		m.doc.deleteBack()
	case key.Matches(msg, m.keys.Enter):
		m.doc.insert("\n")
	case msg.Type == tea.KeySpace:
		m.doc.insert(" ")
	case msg.Type == tea.KeyRunes:
		m.doc.insert(string(msg.Runes))
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.popup.Close()
	m.ctrl.Cleanup()
	m.quitting = true
	return tea.Quit
}

// Run opens the editor on the terminal until the user quits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
