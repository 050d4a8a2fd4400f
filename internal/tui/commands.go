package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pillminder/internal/models"
)

var clipboardWrite = clipboard.WriteAll

func (m Model) loadToday() tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		day, err := s.Today(ctx)
		return todayLoadedMsg{day: day, err: err}
	}
}

func (m Model) loadCalendar(date string) tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		sched, err := s.ScheduleFor(ctx, date)
		return calendarLoadedMsg{date: date, schedule: sched, err: err}
	}
}

func (m Model) loadHistory() tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		intakes, err := s.History(ctx)
		return historyLoadedMsg{intakes: intakes, err: err}
	}
}

func (m Model) addMedication(d models.Draft) tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		med, err := s.AddMedication(ctx, &d)
		return medicationAddedMsg{medication: med, err: err}
	}
}

func (m Model) markTaken(id models.ID, doseTime string) tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		_, err := s.MarkTaken(ctx, id, doseTime)
		return takenMsg{err: err}
	}
}

func (m Model) createShareLink() tea.Cmd {
	s, ctx, origin := m.session, m.ctx, m.origin
	return func() tea.Msg {
		url, err := s.CreateShareLink(ctx, origin)
		return shareCreatedMsg{url: url, err: err}
	}
}

func copyToClipboard(url string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboardWrite(url)}
	}
}

// listen waits for the next out-of-band event from the reminder timers or
// the midnight rollover.
func (m Model) listen() tea.Cmd {
	return tea.Batch(m.waitForFired(), m.waitForRollover())
}

func (m Model) waitForFired() tea.Cmd {
	fired := m.fired
	return func() tea.Msg {
		return reminderFiredMsg{notification: <-fired}
	}
}

func (m Model) waitForRollover() tea.Cmd {
	rolled := m.rolled
	return func() tea.Msg {
		<-rolled
		return rolloverMsg{}
	}
}

// reload fetches every data view regardless of the refresh counter.
func (m *Model) reload() tea.Cmd {
	cur := m.session.Refresh()
	m.todaySeen, m.calendarSeen, m.historySeen = cur, cur, cur
	return tea.Batch(m.loadToday(), m.loadCalendar(m.calendarModel.Date), m.loadHistory())
}

// syncRefresh re-fetches every view whose last load predates the current
// refresh counter. Loads are not sequenced: if two overlap, whichever
// finishes last wins.
func (m *Model) syncRefresh() tea.Cmd {
	cur := m.session.Refresh()
	var cmds []tea.Cmd
	if m.todaySeen != cur {
		m.todaySeen = cur
		cmds = append(cmds, m.loadToday())
	}
	if m.calendarSeen != cur {
		m.calendarSeen = cur
		cmds = append(cmds, m.loadCalendar(m.calendarModel.Date))
	}
	if m.historySeen != cur {
		m.historySeen = cur
		cmds = append(cmds, m.loadHistory())
	}
	return tea.Batch(cmds...)
}
