package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth   = 80
	minNameWidth   = 12
	chromeHeight   = 9 // title, toolbar, header, status, help and spacing
	minVisibleRows = 3
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b, m.Title())
	b.WriteString(m.toolbarView() + "\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.form.view() + "\n")
	case modeFile:
		b.WriteString(m.prompt.view() + "\n")
	case modeConfirm:
		b.WriteString(m.confirm.view() + "\n")
	case modeMessage:
		if m.returnMode == modeForm && m.form != nil {
			b.WriteString(m.form.view() + "\n")
		}
		b.WriteString(errorDialogStyle.Render(errorStyle.Render("Error")+"\n\n"+m.message+"\n\n"+
			disabledStyle.Render("press any key")) + "\n")
	default:
		m.writeTable(&b)
		if m.status != "" {
			b.WriteString(statusStyle.Render(m.status) + "\n")
		}
		b.WriteString("\n" + m.help.View(m.keys))
	}
	return b.String()
}

func writeTitle(b *strings.Builder, title string) {
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(title)) + "\n")
}

func (m *Model) toolbarView() string {
	parts := make([]string, 0, len(m.keys.Toolbar()))
	for _, binding := range m.keys.Toolbar() {
		parts = append(parts, toolbarItem(binding))
	}
	return strings.Join(parts, "  ")
}

func toolbarItem(b key.Binding) string {
	h := b.Help()
	if !b.Enabled() {
		return disabledStyle.Render("[" + h.Key + "] " + h.Desc)
	}
	return toolKeyStyle.Render("["+h.Key+"]") + " " + toolStyle.Render(h.Desc)
}

func (m *Model) visibleRows() int {
	if m.height == 0 {
		return m.list.Len()
	}
	rows := m.height - chromeHeight
	if rows < minVisibleRows {
		rows = minVisibleRows
	}
	return rows
}

// scroll keeps the cursor within the visible window.
func (m *Model) scroll(rows int) {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if max := m.list.Len() - rows; m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) nameWidth() int {
	width := m.width
	if width == 0 {
		width = defaultWidth
	}
	// cursor(2) + done(6) + date(10) + gaps
	w := width - 22
	if w < minNameWidth {
		w = minNameWidth
	}
	return w
}

func (m *Model) writeTable(b *strings.Builder) {
	nameWidth := m.nameWidth()
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-6s %-*s %-10s", "Done", nameWidth, "Task", "Date")) + "\n")

	if m.list.Len() == 0 {
		b.WriteString(disabledStyle.Render("  No tasks. Press a to add one or o to load a list.") + "\n")
		return
	}

	rows := m.visibleRows()
	m.scroll(rows)
	end := m.offset + rows
	if end > m.list.Len() {
		end = m.list.Len()
	}

	tasks := m.list.Tasks()
	for i := m.offset; i < end; i++ {
		t := tasks[i]
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		check := "[ ]"
		if t.Done {
			check = "[x]"
		}
		name := fmt.Sprintf("%-*s", nameWidth, truncate(t.Name, nameWidth))
		if t.Done {
			name = doneStyle.Render(name)
		}
		line := fmt.Sprintf("%-6s %s %s", check, name, t.Date.String())
		if m.selected[i] {
			line = selectedStyle.Render(line)
		}
		b.WriteString(pointer + line + "\n")
	}
	if end < m.list.Len() || m.offset > 0 {
		b.WriteString(disabledStyle.Render(fmt.Sprintf("  rows %d-%d of %d", m.offset+1, end, m.list.Len())) + "\n")
	}
}

// truncate shortens s to width display cells, marking the cut with "…".
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
