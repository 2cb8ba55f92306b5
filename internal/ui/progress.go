// Package ui renders live progress for batch spell checks.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"linguist/internal/check"
)

// maxRows bounds the file list so large trees do not scroll the terminal.
const maxRows = 8

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	statusStyle = map[check.Status]lipgloss.Style{
		check.StatusQueued:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		check.StatusChecking: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		check.StatusDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		check.StatusError:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
	dirtyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

type fileState struct {
	status   check.Status
	findings int
	seq      int // order of the last status change
}

type progressModel struct {
	title   string
	events  <-chan check.Event
	spinner spinner.Model
	bar     progress.Model

	files  []string
	state  map[string]*fileState
	tick   int
	closed int
	errors int
	words  int
	width  int
	done   bool
}

type eventMsg check.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows the events of a
// check.Files run over files until events is closed.
func NewProgressModel(title string, files []string, events <-chan check.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	state := make(map[string]*fileState, len(files))
	for _, f := range files {
		state[f] = &fileState{status: check.StatusQueued}
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		files:   files,
		state:   state,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(check.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// apply records ev. Events for unknown files and events after a file
// finished are dropped.
func (m *progressModel) apply(ev check.Event) tea.Cmd {
	st, ok := m.state[ev.File]
	if !ok || finished(st.status) {
		return nil
	}
	m.tick++
	st.status, st.seq = ev.Status, m.tick
	if !finished(ev.Status) {
		return nil
	}
	m.closed++
	if ev.Status == check.StatusError {
		m.errors++
	}
	st.findings = ev.Findings
	m.words += ev.Findings
	return m.bar.SetPercent(float64(m.closed) / float64(len(m.files)))
}

func finished(s check.Status) bool {
	return s == check.StatusDone || s == check.StatusError
}

func (m *progressModel) View() string {
	if len(m.files) == 0 {
		return ""
	}
	head := fmt.Sprintf("%s (%d/%d files, %d misspelled", m.title, m.closed, len(m.files), m.words)
	if m.errors > 0 {
		head += fmt.Sprintf(", %d unreadable", m.errors)
	}
	head += ")"
	if m.done {
		head = "done: " + head
	} else {
		head = m.spinner.View() + " " + head
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(head))
	b.WriteString("\n\n")
	nameWidth := max(m.width-18, 20)
	for _, f := range m.visible() {
		st := m.state[f]
		fmt.Fprintf(&b, "  %s %s\n", m.label(st), truncate(f, nameWidth))
	}
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visible picks the rows worth showing: files in flight, failures and files
// with findings first, then the most recently touched.
func (m *progressModel) visible() []string {
	if len(m.files) <= maxRows {
		return m.files
	}
	rank := func(st *fileState) int {
		switch {
		case st.status == check.StatusChecking:
			return 0
		case st.status == check.StatusError, st.findings > 0:
			return 1
		case st.seq > 0:
			return 2
		}
		return 3
	}
	var rows []string
	for r := 0; r <= 3 && len(rows) < maxRows; r++ {
		for i := len(m.files) - 1; i >= 0 && len(rows) < maxRows; i-- {
			if rank(m.state[m.files[i]]) == r {
				rows = append(rows, m.files[i])
			}
		}
	}
	return rows
}

func (m *progressModel) label(st *fileState) string {
	text := string(st.status)
	style := statusStyle[st.status]
	if st.status == check.StatusDone && st.findings > 0 {
		text = fmt.Sprintf("%d misspelled", st.findings)
		style = dirtyStyle
	}
	return style.Render(fmt.Sprintf("%14s", text))
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
