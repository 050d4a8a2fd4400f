package reminder

import (
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/pillminder/internal/logger"
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/utils"
)

// Notifier delivers a fired reminder to the platform.
type Notifier interface {
	Notify(models.Notification) error
}

// Timer is a cancellable one-shot timer. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// AfterFunc arms f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

// Upcoming is an armed reminder that has not fired yet.
type Upcoming struct {
	Item models.ScheduleItem
	Date string
	At   time.Time
}

type handle struct {
	timer    Timer
	upcoming Upcoming
	done     bool
}

// Scheduler arms one local notification per remaining dose of the current
// schedule. It owns every pending timer; Replace is the only way to change
// them and always cancels the old set before arming a new one.
type Scheduler struct {
	mu         sync.Mutex
	notifier   Notifier
	now        func() time.Time
	afterFunc  AfterFunc
	loc        *time.Location
	onFire     func(models.Notification)
	permission models.Permission
	schedule   *models.Schedule
	pending    []*handle
	closed     bool
}

type Option func(*Scheduler)

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func WithAfterFunc(fn AfterFunc) Option {
	return func(s *Scheduler) { s.afterFunc = fn }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) { s.loc = loc }
}

// WithOnFire registers a hook that runs after each reminder is handed to the notifier.
func WithOnFire(fn func(models.Notification)) Option {
	return func(s *Scheduler) { s.onFire = fn }
}

func New(notifier Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		notifier: notifier,
		now:      time.Now,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetPermission records the permission state. Granting re-arms the current
// schedule; any other state leaves existing timers alone.
func (s *Scheduler) SetPermission(p models.Permission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.permission = p
	if p == models.PermissionGranted && s.schedule != nil && !s.closed {
		s.replaceLocked(s.schedule)
	}
}

// Permission returns the last recorded permission state.
func (s *Scheduler) Permission() models.Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permission
}

// Replace swaps in a new schedule and returns how many reminders were armed.
func (s *Scheduler) Replace(sched *models.Schedule) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	s.schedule = sched
	return s.replaceLocked(sched)
}

// Close cancels every pending reminder. The scheduler arms nothing afterwards.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.closed = true
}

// Pending reports the number of armed, unfired reminders.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Upcoming lists armed reminders in firing order.
func (s *Scheduler) Upcoming() []Upcoming {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Upcoming, 0, len(s.pending))
	for _, h := range s.pending {
		out = append(out, h.upcoming)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

func (s *Scheduler) replaceLocked(sched *models.Schedule) int {
	s.cancelLocked()

	if s.permission != models.PermissionGranted || sched == nil {
		return 0
	}

	now := s.now()
	for _, item := range sched.Items {
		at, err := utils.CombineDateAndTime(sched.Date, item.Time, s.loc)
		if err != nil {
			logger.Debug("Skipping reminder with unparseable time", "date", sched.Date, "time", item.Time, "error", err)
			continue
		}
		if !at.After(now) {
			continue
		}

		h := &handle{upcoming: Upcoming{Item: item, Date: sched.Date, At: at}}
		h.timer = s.afterFunc(at.Sub(now), func() { s.fire(h) })
		s.pending = append(s.pending, h)
	}

	logger.Debug("Reminders armed", "date", sched.Date, "count", len(s.pending))
	return len(s.pending)
}

func (s *Scheduler) cancelLocked() {
	for _, h := range s.pending {
		h.done = true
		h.timer.Stop()
	}
	s.pending = nil
}

func (s *Scheduler) fire(h *handle) {
	s.mu.Lock()
	if h.done {
		// canceled after the timer had already started running
		s.mu.Unlock()
		return
	}
	h.done = true
	for i, p := range s.pending {
		if p == h {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			break
		}
	}
	onFire := s.onFire
	s.mu.Unlock()

	n := h.upcoming.Item.Notification(h.upcoming.Date)
	s.deliver(n)
	if onFire != nil {
		onFire(n)
	}
}

// deliver never lets a notifier failure escape; one bad reminder must not
// affect the others.
func (s *Scheduler) deliver(n models.Notification) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Notifier panicked", "key", n.Key, "panic", r)
		}
	}()

	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(n); err != nil {
		logger.Debug("Notification not delivered", "key", n.Key, "error", err)
	}
}
