package history

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pillminder/internal/models"
)

const EmptyMessage = "No intakes logged yet."

type Model struct {
	table   table.Model
	intakes []models.Intake
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return Model{table: t}
}

func columns(width int) []table.Column {
	takenW := max(width-12-8-16, 20)
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Time", Width: 8},
		{Title: "Medication", Width: 16},
		{Title: "Logged", Width: takenW},
	}
}

// SetIntakes replaces the rows. Rows are shown in the order the backend returned them.
func (m *Model) SetIntakes(intakes []models.Intake) {
	m.intakes = intakes
	rows := make([]table.Row, 0, len(intakes))
	for _, in := range intakes {
		rows = append(rows, table.Row{in.Date, in.Time, "#" + in.MedicationID.String(), formatTakenAt(in.TakenAt)})
	}
	m.table.SetRows(rows)
}

func formatTakenAt(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Local().Format("Jan 2 15:04")
}

// Keys returns the display key of every intake, in row order.
func (m Model) Keys() []string {
	out := make([]string, len(m.intakes))
	for i, in := range m.intakes {
		out[i] = in.Key()
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.intakes) == 0 {
		return EmptyMessage
	}
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	m.table.SetColumns(columns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}
