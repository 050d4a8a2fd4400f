package share

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// CreateMsg asks the parent to request a new share link.
type CreateMsg struct{}

// CopyMsg asks the parent to copy URL to the clipboard.
type CopyMsg struct {
	URL string
}

type KeyMap struct {
	Create key.Binding
	Copy   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Create: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "create link"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
	}
}

type Model struct {
	keys    KeyMap
	URL     string
	pending bool
	copied  bool
}

func New() Model {
	return Model{keys: DefaultKeyMap()}
}

// SetURL shows a freshly created link. Nothing about it is persisted.
func (m *Model) SetURL(url string) {
	m.URL = url
	m.pending = false
	m.copied = false
}

// Done clears the pending flag after a failed request.
func (m *Model) Done() { m.pending = false }

func (m *Model) SetCopied() { m.copied = true }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msgKey, m.keys.Create):
		if m.pending {
			return m, nil
		}
		m.pending = true
		return m, func() tea.Msg { return CreateMsg{} }
	case key.Matches(msgKey, m.keys.Copy):
		if m.URL == "" {
			return m, nil
		}
		url := m.URL
		return m, func() tea.Msg { return CopyMsg{URL: url} }
	}
	return m, nil
}

func (m Model) View() string {
	lines := []string{
		"Give a caregiver read-only access to your schedule and history.",
		"",
	}
	switch {
	case m.pending:
		lines = append(lines, hintStyle.Render("Creating link..."))
	case m.URL == "":
		lines = append(lines, hintStyle.Render("Press 'c' to create a share link."))
	default:
		lines = append(lines, urlStyle.Render(m.URL))
		if m.copied {
			lines = append(lines, hintStyle.Render("Copied to clipboard."))
		} else {
			lines = append(lines, hintStyle.Render("Press 'y' to copy, 'c' for a new link."))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) KeyMap() KeyMap { return m.keys }
