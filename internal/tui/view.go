package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pillminder/internal/constants"
)

const caregiverBanner = "Caregiver View (read-only)"

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateToday:
		content = docStyle.Render(m.todayModel.View())
	case constants.StateAdd:
		content = docStyle.Render(m.addModel.View())
	case constants.StateCalendar:
		content = docStyle.Render(m.calendarModel.View())
	case constants.StateHistory:
		content = docStyle.Render(m.historyModel.View())
	case constants.StateShare:
		content = docStyle.Render(m.shareModel.View())
	case constants.StateReminders:
		content = docStyle.Render(m.remindersModel.View())
	case constants.StateEditDraft, constants.StateAddTime, constants.StateConfirmPermission:
		content = docStyle.Render(m.form.View())
	case constants.StateAlert:
		content = m.viewAlert()
	}

	var banner string
	if m.session.Mode().ReadOnly() {
		banner = caregiverBannerStyle.Render(caregiverBanner)
	}

	var toast string
	if m.toast != "" {
		toast = toastStyle.Render(m.toast)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		banner,
		m.viewTabs(),
		content,
		toast,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(m.tabs))
	for _, state := range m.tabs {
		if state == m.activeTab() {
			tabs = append(tabs, activeTabStyle.Render(tabTitles[state]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tabTitles[state]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// activeTab is the tab to highlight; forms and alerts keep their parent tab lit.
func (m Model) activeTab() constants.SessionState {
	switch m.state {
	case constants.StateEditDraft, constants.StateAddTime, constants.StateConfirmPermission, constants.StateAlert:
		return m.previousState
	}
	return m.state
}

func (m Model) viewAlert() string {
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.alert),
			"",
			"[enter] OK",
		),
	)
}
