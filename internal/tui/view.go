package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"phonebook/internal/sync"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	cursorStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true).MarginTop(1)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).MarginTop(1)

	bannerStyles = map[sync.NoteKind]lipgloss.Style{
		sync.NoteAdded:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		sync.NoteUpdated: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		sync.NoteDeleted: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		sync.NoteError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.core.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Phonebook"))
	b.WriteString("\n")

	if state.Note.Message != "" {
		style, ok := bannerStyles[state.Note.Kind]
		if !ok {
			style = lipgloss.NewStyle()
		}
		b.WriteString(style.Render(state.Note.Message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("add a new"))
	b.WriteString("\n")
	b.WriteString(m.name.View())
	b.WriteString("\n")
	b.WriteString(m.number.View())
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Numbers"))
	b.WriteString("\n")
	visible := state.Visible()
	if len(visible) == 0 {
		b.WriteString(helpStyle.Render("no entries"))
		b.WriteString("\n")
	}
	for i, p := range visible {
		line := p.Name + " " + p.Number
		if m.focus == focusList && i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.pending != nil {
		b.WriteString(promptStyle.Render(m.pending.Prompt + " [y/n]"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab: next field • enter: add • d: delete • ctrl+c: quit"))
	b.WriteString("\n")
	return b.String()
}
