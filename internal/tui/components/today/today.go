package today

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pillminder/internal/models"
)

// MarkTakenMsg asks the parent to log an intake for one dose.
type MarkTakenMsg struct {
	MedicationID models.ID
	Time         string
}

// Item is one dose button: a medication at one of its times.
type Item struct {
	Medication models.Medication
	Time       string
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  %s", i.Time, i.Medication.Name)
}

func (i Item) Description() string {
	desc := i.Medication.Dosage
	if days := i.Medication.FormatDays(); days != "-" {
		desc += " | " + days
	}
	if i.Medication.Notes != "" {
		desc += " | " + i.Medication.Notes
	}
	return desc
}

func (i Item) FilterValue() string { return i.Medication.Name }

type KeyMap struct {
	Take key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Take: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "mark taken"),
		),
	}
}

type Model struct {
	list     list.Model
	keys     KeyMap
	readOnly bool
	loaded   bool
}

// New builds the list. A read-only list renders muted and never emits MarkTakenMsg.
func New(readOnly bool, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	if readOnly {
		muted := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 0, 0, 2)
		delegate.Styles.NormalTitle = muted
		delegate.Styles.NormalDesc = muted
		delegate.Styles.SelectedTitle = muted.Bold(true)
		delegate.Styles.SelectedDesc = muted
	}

	l := list.New(nil, delegate, width, height)
	l.Title = "Today's Schedule"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	if readOnly {
		keys.Take.SetEnabled(false)
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{keys.Take} }

	return Model{list: l, keys: keys, readOnly: readOnly}
}

// SetMedications lays out one entry per medication per time, in the order given.
func (m *Model) SetMedications(meds []models.Medication) {
	var items []list.Item
	for _, med := range meds {
		for _, t := range med.Times {
			items = append(items, Item{Medication: med, Time: t})
		}
	}
	m.list.SetItems(items)
	m.loaded = true
}

// Items returns the dose entries currently shown.
func (m Model) Items() []Item {
	out := make([]Item, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		out = append(out, it.(Item))
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Take) {
		if m.readOnly {
			return m, nil
		}
		if i, ok := m.list.SelectedItem().(Item); ok {
			return m, func() tea.Msg {
				return MarkTakenMsg{MedicationID: i.Medication.ID, Time: i.Time}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		if !m.loaded {
			return "\n  Loading..."
		}
		if m.readOnly {
			return "\n  No medications scheduled today."
		}
		return "\n  No medications yet.\n  Add one from the Add tab."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) KeyMap() KeyMap { return m.keys }
