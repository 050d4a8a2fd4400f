package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pillminder/internal/constants"
	"github.com/julianstephens/pillminder/internal/logger"
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/notifier"
	"github.com/julianstephens/pillminder/internal/reminder"
	"github.com/julianstephens/pillminder/internal/session"
	"github.com/julianstephens/pillminder/internal/storage"
	"github.com/julianstephens/pillminder/internal/tui/components/addmed"
	"github.com/julianstephens/pillminder/internal/tui/components/calendar"
	"github.com/julianstephens/pillminder/internal/tui/components/history"
	"github.com/julianstephens/pillminder/internal/tui/components/reminders"
	"github.com/julianstephens/pillminder/internal/tui/components/share"
	"github.com/julianstephens/pillminder/internal/tui/components/today"
)

var tabTitles = map[constants.SessionState]string{
	constants.StateToday:     "Today",
	constants.StateAdd:       "Add",
	constants.StateCalendar:  "Calendar",
	constants.StateHistory:   "History",
	constants.StateShare:     "Share",
	constants.StateReminders: "Reminders",
}

// Options wires a Model to its collaborators.
type Options struct {
	Session   *session.Session
	Store     storage.Provider // optional; permission is not persisted without it
	Notifier  notifier.Notifier
	WebOrigin string
	Now       func() time.Time
	AfterFunc reminder.AfterFunc
}

type Model struct {
	ctx       context.Context
	session   *session.Session
	store     storage.Provider
	notifier  notifier.Notifier
	reminders *reminder.Scheduler
	rollover  *reminder.Rollover
	fired     chan models.Notification
	rolled    chan struct{}
	origin    string
	now       func() time.Time

	tabs          []constants.SessionState
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	todayModel     today.Model
	addModel       addmed.Model
	calendarModel  calendar.Model
	historyModel   history.Model
	shareModel     share.Model
	remindersModel reminders.Model

	form           *huh.Form
	draftForm      *DraftFormModel
	timeForm       *TimeFormModel
	permissionForm *PermissionFormModel
	alert          string
	toast          string

	// refresh counter values each view last loaded for
	todaySeen    uint64
	calendarSeen uint64
	historySeen  uint64

	quitting bool
	width    int
	height   int
}

func NewModel(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	readOnly := opts.Session.Mode().ReadOnly()

	fired := make(chan models.Notification, 16)
	schedOpts := []reminder.Option{
		reminder.WithClock(now),
		reminder.WithOnFire(func(n models.Notification) {
			select {
			case fired <- n:
			default:
				logger.Debug("Dropped reminder toast", "key", n.Key)
			}
		}),
	}
	if opts.AfterFunc != nil {
		schedOpts = append(schedOpts, reminder.WithAfterFunc(opts.AfterFunc))
	}
	var platform reminder.Notifier
	if opts.Notifier != nil {
		platform = opts.Notifier
	}

	m := Model{
		ctx:            context.Background(),
		session:        opts.Session,
		store:          opts.Store,
		notifier:       opts.Notifier,
		reminders:      reminder.New(platform, schedOpts...),
		fired:          fired,
		rolled:         make(chan struct{}, 1),
		origin:         opts.WebOrigin,
		now:            now,
		tabs:           tabsFor(readOnly),
		state:          constants.StateToday,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		todayModel:     today.New(readOnly, 0, 0),
		addModel:       addmed.New(),
		calendarModel:  calendar.New(now, 0, 0),
		historyModel:   history.New(0, 0),
		shareModel:     share.New(),
		remindersModel: reminders.New(now),
	}

	permission := models.PermissionUnrequested
	if m.store != nil {
		p, err := m.store.GetPermission(m.ctx)
		if err != nil {
			logger.Warn("Could not read notification permission", "error", err)
		} else {
			permission = p
		}
	}
	m.reminders.SetPermission(permission)
	m.remindersModel.SetPermission(permission)

	return m
}

// tabsFor lists the views available in a mode. Caregivers never get Add or Share.
func tabsFor(readOnly bool) []constants.SessionState {
	if readOnly {
		return []constants.SessionState{
			constants.StateToday,
			constants.StateCalendar,
			constants.StateHistory,
			constants.StateReminders,
		}
	}
	return []constants.SessionState{
		constants.StateToday,
		constants.StateAdd,
		constants.StateCalendar,
		constants.StateHistory,
		constants.StateShare,
		constants.StateReminders,
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	return append(keys, m.viewKeys()...)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Reload, m.keys.Quit, m.keys.Help}
	return [][]key.Binding{global, m.viewKeys()}
}

func (m Model) viewKeys() []key.Binding {
	switch m.state {
	case constants.StateToday:
		return []key.Binding{m.todayModel.KeyMap().Take}
	case constants.StateAdd:
		k := m.addModel.KeyMap()
		return []key.Binding{k.Edit, k.AddTime, k.Remove, k.Submit}
	case constants.StateCalendar:
		k := m.calendarModel.KeyMap()
		return []key.Binding{k.Prev, k.Next, k.Today}
	case constants.StateShare:
		k := m.shareModel.KeyMap()
		return []key.Binding{k.Create, k.Copy}
	case constants.StateReminders:
		return []key.Binding{m.remindersModel.KeyMap().Enable}
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.listen())
}

// Close cancels every pending reminder and stops the midnight rollover.
func (m Model) Close() {
	m.reminders.Close()
	if m.rollover != nil {
		m.rollover.Stop()
	}
}

// StartRollover reloads today's schedule at every local midnight.
func (m *Model) StartRollover() error {
	r := reminder.NewRollover(time.Local)
	rolled := m.rolled
	if err := r.Start(func() {
		select {
		case rolled <- struct{}{}:
		default:
		}
	}); err != nil {
		return err
	}
	m.rollover = r
	return nil
}

// Run starts the interactive program and blocks until the user quits.
func Run(opts Options) error {
	m := NewModel(opts)
	if err := m.StartRollover(); err != nil {
		logger.Warn("Midnight rollover disabled", "error", err)
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
