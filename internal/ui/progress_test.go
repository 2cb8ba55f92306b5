package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"linguist/internal/check"
)

func TestProgressModelCountsFinishedFiles(t *testing.T) {
	events := make(chan check.Event)
	m := NewProgressModel("checking", []string{"a.txt", "b.txt"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.txt", Status: check.StatusChecking})
	m.Update(eventMsg{File: "a.txt", Status: check.StatusDone, Findings: 2})
	m.Update(eventMsg{File: "b.txt", Status: check.StatusError})
	// late events for finished files are ignored
	m.Update(eventMsg{File: "a.txt", Status: check.StatusChecking})
	m.Update(eventMsg{File: "unknown.txt", Status: check.StatusDone, Findings: 9})

	if m.closed != 2 || m.words != 2 || m.errors != 1 {
		t.Fatalf("closed=%d words=%d errors=%d", m.closed, m.words, m.errors)
	}
	if m.state["a.txt"].status != check.StatusDone {
		t.Fatalf("a.txt status = %s", m.state["a.txt"].status)
	}
	view := m.View()
	for _, want := range []string{"2/2 files", "2 misspelled", "1 unreadable", "error"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	if _, cmd := m.Update(doneMsg{}); cmd == nil || !m.done {
		t.Fatalf("done message did not quit")
	}
}

func TestVisibleRowsPreferActiveFiles(t *testing.T) {
	var files []string
	for i := range 20 {
		files = append(files, fmt.Sprintf("f%02d.txt", i))
	}
	m := NewProgressModel("checking", files, make(chan check.Event)).(*progressModel)
	m.Update(eventMsg{File: "f03.txt", Status: check.StatusChecking})
	m.Update(eventMsg{File: "f05.txt", Status: check.StatusChecking})
	m.Update(eventMsg{File: "f05.txt", Status: check.StatusDone, Findings: 1})
	m.Update(eventMsg{File: "f07.txt", Status: check.StatusChecking})
	m.Update(eventMsg{File: "f07.txt", Status: check.StatusDone})

	rows := m.visible()
	if len(rows) != maxRows {
		t.Fatalf("%d rows, want %d", len(rows), maxRows)
	}
	if rows[0] != "f03.txt" || rows[1] != "f05.txt" || rows[2] != "f07.txt" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("日本語のファイル", 9); got != "日本語..." {
		t.Fatalf("truncate wide = %q", got)
	}
}

func TestViewKeepsPrefixOfLongNames(t *testing.T) {
	long := "docs/chapters/" + strings.Repeat("x", 40) + ".md"
	m := NewProgressModel("checking", []string{long}, make(chan check.Event)).(*progressModel)
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(m.View(), "docs/chapters/xxx...") {
		t.Fatalf("long name not shortened with its prefix:\n%s", m.View())
	}
}
