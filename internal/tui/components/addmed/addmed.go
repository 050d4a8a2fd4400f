package addmed

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pillminder/internal/constants"
	"github.com/julianstephens/pillminder/internal/models"
)

var (
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(9)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	offDayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
)

// EditDetailsMsg opens the name/dosage/days/notes form.
type EditDetailsMsg struct{}

// AddTimeMsg opens the time entry prompt.
type AddTimeMsg struct{}

// SubmitMsg carries a snapshot of a ready draft.
type SubmitMsg struct {
	Draft models.Draft
}

type KeyMap struct {
	Edit    key.Binding
	AddTime key.Binding
	Remove  key.Binding
	Up      key.Binding
	Down    key.Binding
	Submit  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Edit: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "edit details"),
		),
		AddTime: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "add time"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove time"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
	}
}

type Model struct {
	keys   KeyMap
	Draft  *models.Draft
	cursor int
	saving bool
}

func New() Model {
	return Model{keys: DefaultKeyMap(), Draft: models.NewDraft()}
}

// Reset puts the draft back to its defaults after a successful save.
func (m *Model) Reset() {
	m.Draft.Reset()
	m.cursor = 0
	m.saving = false
}

// Failed re-enables saving and leaves the draft as the user left it.
func (m *Model) Failed() { m.saving = false }

func (m *Model) clampCursor() {
	if m.cursor >= len(m.Draft.Times) {
		m.cursor = len(m.Draft.Times) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msgKey, m.keys.Edit):
		return m, func() tea.Msg { return EditDetailsMsg{} }
	case key.Matches(msgKey, m.keys.AddTime):
		return m, func() tea.Msg { return AddTimeMsg{} }
	case key.Matches(msgKey, m.keys.Remove):
		if len(m.Draft.Times) > 0 {
			m.Draft.RemoveTime(m.Draft.Times[m.cursor])
			m.clampCursor()
		}
	case key.Matches(msgKey, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msgKey, m.keys.Down):
		if m.cursor < len(m.Draft.Times)-1 {
			m.cursor++
		}
	case key.Matches(msgKey, m.keys.Submit):
		// an incomplete draft is never sent
		if m.saving || !m.Draft.Ready() {
			return m, nil
		}
		m.saving = true
		snapshot := *m.Draft
		snapshot.Times = slices.Clone(m.Draft.Times)
		snapshot.Days = slices.Clone(m.Draft.Days)
		return m, func() tea.Msg { return SubmitMsg{Draft: snapshot} }
	}
	return m, nil
}

func (m Model) View() string {
	d := m.Draft
	var b strings.Builder

	row := func(label, value string) {
		if value == "" {
			value = offDayStyle.Render("-")
		} else {
			value = valueStyle.Render(value)
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label), value)
	}
	row("Name", d.Name)
	row("Dosage", d.Dosage)

	b.WriteString(labelStyle.Render("Times") + "\n")
	if len(d.Times) == 0 {
		b.WriteString("  " + offDayStyle.Render("none") + "\n")
	}
	for i, t := range d.Times {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+t) + "\n")
		} else {
			b.WriteString("  " + t + "\n")
		}
	}

	days := make([]string, len(constants.Weekdays))
	for i, label := range constants.Weekdays {
		if slices.Contains(d.Days, i) {
			days[i] = valueStyle.Render(label)
		} else {
			days[i] = offDayStyle.Render(label)
		}
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Days"), strings.Join(days, " "))
	row("Notes", d.Notes)

	b.WriteString("\n")
	switch {
	case m.saving:
		b.WriteString(hintStyle.Render("Saving..."))
	case !d.Ready():
		b.WriteString(hintStyle.Render("Name, dosage and at least one time are required."))
	default:
		b.WriteString(hintStyle.Render("Press 's' to save."))
	}
	return b.String()
}

func (m Model) KeyMap() KeyMap { return m.keys }
