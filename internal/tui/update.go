package tui

import (
	"errors"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pillminder/internal/constants"
	"github.com/julianstephens/pillminder/internal/logger"
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/notifier"
	"github.com/julianstephens/pillminder/internal/session"
	"github.com/julianstephens/pillminder/internal/tui/components/addmed"
	"github.com/julianstephens/pillminder/internal/tui/components/calendar"
	"github.com/julianstephens/pillminder/internal/tui/components/reminders"
	"github.com/julianstephens/pillminder/internal/tui/components/share"
	"github.com/julianstephens/pillminder/internal/tui/components/today"
)

const unsupportedAlert = "This system cannot show notifications.\nStart pillminder-tray and try again."

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.handleData(msg); handled {
		return m, cmd
	}

	switch m.state {
	case constants.StateEditDraft, constants.StateAddTime, constants.StateConfirmPermission:
		return m, m.updateForm(msg)
	case constants.StateAlert:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case msg.String() == "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Dismiss):
				m.alert = ""
				m.state = m.previousState
			}
		}
		return m, nil
	}

	if handled, cmd := m.handleViewMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}
	}

	return m, m.updateActiveView(msg)
}

// handleData applies results of async loads and actions. It runs in every
// state so an open form never swallows a response. Failed loads leave the
// view as it was.
func (m *Model) handleData(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return true, nil

	case todayLoadedMsg:
		if msg.err != nil {
			logger.Warn("Failed to load today", "error", msg.err)
		}
		if msg.day.HasMedications {
			m.todayModel.SetMedications(msg.day.Medications)
		}
		if msg.day.Schedule != nil {
			armed := m.reminders.Replace(msg.day.Schedule)
			m.remindersModel.SetUpcoming(m.reminders.Upcoming())
			logger.Debug("Today loaded", "items", len(msg.day.Schedule.Items), "armed", armed)
		}
		return true, nil

	case calendarLoadedMsg:
		if msg.err != nil {
			logger.Warn("Failed to load schedule", "date", msg.date, "error", msg.err)
			return true, nil
		}
		m.calendarModel.SetSchedule(msg.schedule)
		return true, nil

	case historyLoadedMsg:
		if msg.err != nil {
			logger.Warn("Failed to load history", "error", msg.err)
			return true, nil
		}
		m.historyModel.SetIntakes(msg.intakes)
		return true, nil

	case medicationAddedMsg:
		if msg.err != nil {
			logger.Warn("Failed to add medication", "error", msg.err)
			m.addModel.Failed()
			return true, nil
		}
		m.addModel.Reset()
		m.toast = "Added " + msg.medication.Name
		return true, m.syncRefresh()

	case takenMsg:
		if msg.err != nil && !errors.Is(msg.err, session.ErrReadOnly) {
			logger.Warn("Failed to mark dose taken", "error", msg.err)
		}
		return true, m.syncRefresh()

	case shareCreatedMsg:
		if msg.err != nil {
			logger.Warn("Failed to create share link", "error", msg.err)
			m.shareModel.Done()
			return true, nil
		}
		m.shareModel.SetURL(msg.url)
		return true, nil

	case copiedMsg:
		if msg.err != nil {
			logger.Warn("Clipboard unavailable", "error", msg.err)
			return true, nil
		}
		m.shareModel.SetCopied()
		return true, nil

	case reminderFiredMsg:
		m.remindersModel.SetLastFired(msg.notification)
		m.remindersModel.SetUpcoming(m.reminders.Upcoming())
		m.toast = msg.notification.Title + ": " + msg.notification.Body
		return true, m.waitForFired()

	case rolloverMsg:
		logger.Info("Day rolled over, reloading schedule")
		return true, tea.Batch(m.loadToday(), m.waitForRollover())
	}
	return false, nil
}

// handleViewMessages turns component requests into backend calls or forms.
func (m *Model) handleViewMessages(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case today.MarkTakenMsg:
		return true, m.markTaken(msg.MedicationID, msg.Time)

	case addmed.EditDetailsMsg:
		d := m.addModel.Draft
		m.draftForm = &DraftFormModel{
			Name:   d.Name,
			Dosage: d.Dosage,
			Days:   slices.Clone(d.Days),
			Notes:  d.Notes,
		}
		m.form = NewDraftForm(m.draftForm)
		return true, m.openForm(constants.StateEditDraft)

	case addmed.AddTimeMsg:
		m.timeForm = &TimeFormModel{}
		m.form = NewTimeForm(m.timeForm)
		return true, m.openForm(constants.StateAddTime)

	case addmed.SubmitMsg:
		return true, m.addMedication(msg.Draft)

	case calendar.DateChangedMsg:
		m.calendarSeen = m.session.Refresh()
		return true, m.loadCalendar(msg.Date)

	case share.CreateMsg:
		return true, m.createShareLink()

	case share.CopyMsg:
		return true, copyToClipboard(msg.URL)

	case reminders.RequestPermissionMsg:
		return true, m.requestPermission()
	}
	return false, nil
}

func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.state = m.nextTab(1)
		m.toast = ""
		return true, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = m.nextTab(-1)
		m.toast = ""
		return true, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case key.Matches(msg, m.keys.Reload):
		return true, m.reload()
	}
	return false, nil
}

func (m Model) nextTab(step int) constants.SessionState {
	i := slices.Index(m.tabs, m.state)
	if i < 0 {
		return m.tabs[0]
	}
	n := len(m.tabs)
	return m.tabs[((i+step)%n+n)%n]
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case constants.StateAdd:
		m.addModel, cmd = m.addModel.Update(msg)
	case constants.StateCalendar:
		m.calendarModel, cmd = m.calendarModel.Update(msg)
	case constants.StateHistory:
		m.historyModel, cmd = m.historyModel.Update(msg)
	case constants.StateShare:
		m.shareModel, cmd = m.shareModel.Update(msg)
	case constants.StateReminders:
		m.remindersModel, cmd = m.remindersModel.Update(msg)
	}
	return cmd
}

func (m *Model) openForm(state constants.SessionState) tea.Cmd {
	m.previousState = m.state
	m.state = state
	return m.form.Init()
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		switch m.state {
		case constants.StateEditDraft:
			m.applyDraftForm()
		case constants.StateAddTime:
			if err := m.addModel.Draft.AddTime(m.timeForm.Time); err != nil {
				logger.Debug("Rejected dose time", "error", err)
			}
		case constants.StateConfirmPermission:
			p := models.PermissionDenied
			if m.permissionForm.Allow {
				p = models.PermissionGranted
			}
			m.applyPermission(p)
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return cmd
}

func (m *Model) applyDraftForm() {
	d := m.addModel.Draft
	d.Name = m.draftForm.Name
	d.Dosage = m.draftForm.Dosage
	d.Notes = m.draftForm.Notes
	days := slices.Clone(m.draftForm.Days)
	slices.Sort(days)
	d.Days = days
}

// requestPermission shows the permission prompt once. A platform without
// any notification surface gets a blocking alert instead.
func (m *Model) requestPermission() tea.Cmd {
	supported := notifier.ErrUnsupported
	if m.notifier != nil {
		supported = m.notifier.Supported()
	}
	if supported != nil {
		logger.Warn("Notifications unsupported", "error", supported)
		m.alert = unsupportedAlert
		m.previousState = m.state
		m.state = constants.StateAlert
		return nil
	}
	if m.reminders.Permission() != models.PermissionUnrequested {
		return nil
	}

	m.permissionForm = &PermissionFormModel{Allow: true}
	m.form = NewPermissionForm(m.permissionForm)
	return m.openForm(constants.StateConfirmPermission)
}

func (m *Model) applyPermission(p models.Permission) {
	next, err := m.reminders.Permission().Transition(p)
	if err != nil {
		logger.Warn("Ignoring permission change", "error", err)
		return
	}
	if m.store != nil {
		if err := m.store.SavePermission(m.ctx, next); err != nil {
			logger.Warn("Failed to save notification permission", "error", err)
		}
	}
	m.reminders.SetPermission(next)
	m.remindersModel.SetPermission(next)
	m.remindersModel.SetUpcoming(m.reminders.Upcoming())
}

func (m *Model) resize() {
	w := m.width - 4
	h := m.height - 6
	if m.session.Mode().ReadOnly() {
		h--
	}
	h = max(h, 3)
	m.todayModel.SetSize(w, h)
	m.calendarModel.SetSize(w, h)
	m.historyModel.SetSize(w, h)
}
