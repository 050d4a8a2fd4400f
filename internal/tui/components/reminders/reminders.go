package reminders

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/reminder"
)

var (
	grantedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	deniedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(8)
)

// RequestPermissionMsg asks the parent to run the permission prompt.
type RequestPermissionMsg struct{}

type KeyMap struct {
	Enable key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Enable: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "enable reminders"),
		),
	}
}

type Model struct {
	keys       KeyMap
	now        func() time.Time
	permission models.Permission
	upcoming   []reminder.Upcoming
	last       *models.Notification
}

func New(now func() time.Time) Model {
	return Model{keys: DefaultKeyMap(), now: now}
}

func (m *Model) SetPermission(p models.Permission) {
	m.permission = p
	m.keys.Enable.SetEnabled(p == models.PermissionUnrequested)
}

func (m *Model) SetUpcoming(up []reminder.Upcoming) {
	m.upcoming = up
}

// SetLastFired records the most recent reminder delivered this session.
func (m *Model) SetLastFired(n models.Notification) {
	m.last = &n
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Enable) {
		return m, func() tea.Msg { return RequestPermissionMsg{} }
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	switch m.permission {
	case models.PermissionGranted:
		b.WriteString("Reminders: " + grantedStyle.Render("enabled") + "\n\n")
	case models.PermissionDenied:
		b.WriteString("Reminders: " + deniedStyle.Render("blocked") + "\n")
		b.WriteString(mutedStyle.Render("Permission was denied. Run 'pillminder reminders status' for details.") + "\n")
		return b.String()
	default:
		b.WriteString("Reminders: " + pendingStyle.Render("not enabled") + "\n")
		b.WriteString(mutedStyle.Render("Press 'e' to allow medication reminders.") + "\n")
		return b.String()
	}

	if len(m.upcoming) == 0 {
		b.WriteString(mutedStyle.Render("No more reminders today.") + "\n")
	} else {
		now := m.now()
		for _, u := range m.upcoming {
			fmt.Fprintf(&b, "%s %s • %s %s\n",
				timeStyle.Render(u.Item.Time),
				u.Item.Name,
				u.Item.Dosage,
				mutedStyle.Render("("+humanize.RelTime(u.At, now, "ago", "from now")+")"),
			)
		}
	}

	if m.last != nil {
		b.WriteString("\n" + mutedStyle.Render("Last reminder: "+m.last.Body) + "\n")
	}
	return b.String()
}

func (m Model) KeyMap() KeyMap { return m.keys }
