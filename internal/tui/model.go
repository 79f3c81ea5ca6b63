// Package tui renders the phonebook over the sync core: a filter input, an
// add-contact form, the filtered person list and the notification banner.
// It holds no business rules; every mutation intent is delegated to the
// core and every render reads a fresh snapshot.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"phonebook/internal/person/models"
	"phonebook/internal/sync"
)

// Focusable zones, cycled with tab.
const (
	focusFilter = iota
	focusName
	focusNumber
	focusList
	focusZones
)

// RefreshMsg asks the program to re-render from a fresh core snapshot. The
// core's onChange hook sends it when a notification timer fires.
type RefreshMsg struct{}

type loadDoneMsg struct{ err error }

type opDoneMsg struct {
	confirmation *sync.Confirmation
	err          error
}

// Model is the bubbletea model over the sync core.
type Model struct {
	core *sync.Core

	filter textinput.Model
	name   textinput.Model
	number textinput.Model

	focus   int
	cursor  int
	pending *sync.Confirmation

	width    int
	quitting bool
}

func New(core *sync.Core) Model {
	filter := textinput.New()
	filter.Placeholder = "filter shown with"
	filter.Prompt = "filter: "
	filter.Focus()

	name := textinput.New()
	name.Placeholder = "name"
	name.Prompt = "name:   "

	number := textinput.New()
	number.Placeholder = "number"
	number.Prompt = "number: "

	return Model{core: core, filter: filter, name: name, number: number}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{err: m.core.Load(context.Background())}
	}
}

func (m Model) submitCmd() tea.Cmd {
	return func() tea.Msg {
		conf, err := m.core.Submit(context.Background())
		return opDoneMsg{confirmation: conf, err: err}
	}
}

func (m Model) confirmCmd(conf *sync.Confirmation) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.core.Confirm(context.Background(), conf)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case RefreshMsg, loadDoneMsg:
		// State already transitioned inside the core; rendering picks up
		// the snapshot. Load failures surface as the error banner.
		m.syncDrafts(m.core.Snapshot())
		m.clampCursor()
		return m, nil

	case opDoneMsg:
		if msg.confirmation != nil {
			m.pending = msg.confirmation
		}
		m.syncDrafts(m.core.Snapshot())
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A staged confirmation is modal: only y/n (and quit) are live.
	if m.pending != nil {
		switch msg.String() {
		case "y", "Y":
			conf := m.pending
			m.pending = nil
			return m, m.confirmCmd(conf)
		case "n", "N", "esc":
			// Declined: no request, no state change, no notification.
			m.pending = nil
			return m, nil
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.setFocus((m.focus + 1) % focusZones)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusZones - 1) % focusZones)
		return m, nil
	}

	if m.focus == focusList {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			m.cursor++
			m.clampCursor()
			return m, nil
		case "d", "delete", "backspace":
			visible := m.core.Snapshot().Visible()
			if m.cursor < len(visible) {
				m.pending = m.core.RequestDelete(visible[m.cursor].ID)
			}
			return m, nil
		case "q":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if msg.String() == "enter" && (m.focus == focusName || m.focus == focusNumber) {
		return m, m.submitCmd()
	}

	return m.updateInput(msg)
}

// updateInput forwards the key to the focused text input and mirrors its
// value into the core's state.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusFilter:
		m.filter, cmd = m.filter.Update(msg)
		m.core.SetFilter(m.filter.Value())
		m.clampCursor()
	case focusName:
		m.name, cmd = m.name.Update(msg)
		m.core.SetDraftName(m.name.Value())
	case focusNumber:
		m.number, cmd = m.number.Update(msg)
		m.core.SetDraftNumber(m.number.Value())
	}
	return m, cmd
}

func (m *Model) setFocus(zone int) {
	m.focus = zone
	m.filter.Blur()
	m.name.Blur()
	m.number.Blur()
	switch zone {
	case focusFilter:
		m.filter.Focus()
	case focusName:
		m.name.Focus()
	case focusNumber:
		m.number.Focus()
	}
}

func (m *Model) clampCursor() {
	visible := m.visible()
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) visible() []models.Person {
	return m.core.Snapshot().Visible()
}

// syncDrafts pulls core state back into the inputs after a successful
// mutation cleared the drafts.
func (m *Model) syncDrafts(state sync.State) {
	if state.DraftName != m.name.Value() {
		m.name.SetValue(state.DraftName)
	}
	if state.DraftNumber != m.number.Value() {
		m.number.SetValue(state.DraftNumber)
	}
}
