package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"linguist/internal/textpos"
)

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	misspelledStyle = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("1"))
	selectionStyle  = lipgloss.NewStyle().Reverse(true)
	checkedSelStyle = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	cursorStyle     = lipgloss.NewStyle().Reverse(true).Bold(true)
	menuStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	menuActiveStyle = lipgloss.NewStyle().Reverse(true)
	faintStyle      = lipgloss.NewStyle().Faint(true)
)

type cellClass int

const (
	cellPlain cellClass = iota
	cellMisspelled
	cellSelected
	cellCursor
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")

	menu := ""
	if m.popup.visible {
		menu = m.menuView()
	}
	body := m.height - 3 - lipgloss.Height(menu)
	if menu == "" {
		body = m.height - 2
	}
	if body < 1 {
		body = 1
	}
	top := 0
	if m.doc.cursor.Line >= body {
		top = m.doc.cursor.Line - body + 1
	}
	left := m.leftOffset()
	for ln := top; ln < top+body; ln++ {
		if ln < m.doc.buf.LineCount() {
			b.WriteString(m.renderLine(ln, left))
		} else {
			b.WriteString(faintStyle.Render("~"))
		}
		b.WriteString("\n")
	}
	if menu != "" {
		b.WriteString(menu)
		b.WriteString("\n")
	}
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) header() string {
	name := m.doc.path
	if name == "" {
		name = "[scratch]"
	}
	if m.doc.modified {
		name += " *"
	}
	state := "off"
	if m.ctrl.Enabled() {
		state = "on"
	}
	info := fmt.Sprintf("  %s  spelling %s", m.doc.mode, state)
	room := m.width - runewidth.StringWidth(info)
	if room < 8 {
		room = 8
	}
	return headerStyle.Render(truncate(name, room) + info)
}

func (m *Model) footer() string {
	var help []string
	for _, k := range m.keys.help() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	line := strings.Join(help, " · ")
	if m.status != "" {
		line = m.status + "  " + line
	}
	prefix := ""
	room := m.width
	if m.pending || m.busy {
		prefix = m.spinner.View() + " checking  "
		room -= 12
	}
	return prefix + faintStyle.Render(truncate(line, room))
}

func (m *Model) menuView() string {
	var lines []string
	for i, e := range m.popup.entries {
		if e.divider {
			lines = append(lines, faintStyle.Render("────"))
			continue
		}
		label := m.popup.label(e)
		switch {
		case i == m.popup.index:
			label = menuActiveStyle.Render(label)
		case !m.popup.enabled(e):
			label = faintStyle.Render(label)
		}
		lines = append(lines, label)
	}
	return menuStyle.Render(strings.Join(lines, "\n"))
}

// leftOffset scrolls horizontally so the caret stays on screen.
func (m *Model) leftOffset() int {
	line := []rune(m.doc.buf.Line(m.doc.cursor.Line))
	col := runewidth.StringWidth(string(line[:m.doc.cursor.Char]))
	if col < m.width-1 {
		return 0
	}
	return m.doc.cursor.Char - m.width/2
}

func (m *Model) renderLine(ln, left int) string {
	line := []rune(m.doc.buf.Line(ln))
	deco := m.doc.decorated(ln)
	sel, hasSel := m.doc.selection()
	selStyle := selectionStyle
	if m.doc.styled {
		selStyle = checkedSelStyle
	}

	classOf := func(i int) cellClass {
		p := textpos.Pos{Line: ln, Char: i}
		switch {
		case p == m.doc.cursor:
			return cellCursor
		case hasSel && !p.Less(sel.Start) && p.Less(sel.End):
			return cellSelected
		case i < len(deco) && deco[i]:
			return cellMisspelled
		}
		return cellPlain
	}

	var b strings.Builder
	var seg []rune
	cls := cellPlain
	flush := func() {
		if len(seg) == 0 {
			return
		}
		text := string(seg)
		switch cls {
		case cellCursor:
			text = cursorStyle.Render(text)
		case cellSelected:
			text = selStyle.Render(text)
		case cellMisspelled:
			text = misspelledStyle.Render(text)
		}
		b.WriteString(text)
		seg = seg[:0]
	}

	width := 0
	for i := max(left, 0); i <= len(line); i++ {
		r := ' '
		if i < len(line) {
			r = line[i]
		} else if ln != m.doc.cursor.Line || i != m.doc.cursor.Char {
			break
		}
		w := runewidth.RuneWidth(r)
		if width+w > m.width {
			break
		}
		width += w
		if c := classOf(i); c != cls {
			flush()
			cls = c
		}
		seg = append(seg, r)
	}
	flush()
	return b.String()
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
