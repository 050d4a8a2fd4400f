package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pillminder/internal/constants"
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/utils"
)

const EmptyMessage = "No scheduled doses for this date."

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(8)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	dosageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// DateChangedMsg reports a new selected date; the parent fetches its schedule.
type DateChangedMsg struct {
	Date string
}

type KeyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Today key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev day"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
	}
}

type Model struct {
	viewport viewport.Model
	keys     KeyMap
	now      func() time.Time
	Date     string
	Schedule *models.Schedule
}

func New(now func() time.Time, width, height int) Model {
	m := Model{
		viewport: viewport.New(width, height),
		keys:     DefaultKeyMap(),
		now:      now,
		Date:     utils.Today(now()),
	}
	m.Render()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		next := m.Date
		switch {
		case key.Matches(msg, m.keys.Prev):
			next = shift(m.Date, -1)
		case key.Matches(msg, m.keys.Next):
			next = shift(m.Date, 1)
		case key.Matches(msg, m.keys.Today):
			next = utils.Today(m.now())
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if next == m.Date {
			return m, nil
		}
		m.Date = next
		m.Render()
		return m, func() tea.Msg { return DateChangedMsg{Date: next} }
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func shift(date string, days int) string {
	next, err := utils.ShiftDate(date, days)
	if err != nil {
		return date
	}
	return next
}

// SetSchedule replaces the rendered schedule.
func (m *Model) SetSchedule(s *models.Schedule) {
	m.Schedule = s
	m.Render()
}

func (m Model) View() string {
	header := dateStyle.Render(formatDate(m.Date))
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.viewport.View())
}

func formatDate(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2 2006")
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
	m.Render()
}

func (m *Model) Render() {
	if m.Schedule == nil || len(m.Schedule.Items) == 0 {
		m.viewport.SetContent(EmptyMessage)
		return
	}

	var b strings.Builder
	for _, item := range m.Schedule.Items {
		fmt.Fprintf(&b, "%s %s %s\n",
			timeStyle.Render(item.Time),
			nameStyle.Render(item.Name),
			dosageStyle.Render(item.Dosage),
		)
	}
	m.viewport.SetContent(b.String())
}

func (m Model) KeyMap() KeyMap { return m.keys }
