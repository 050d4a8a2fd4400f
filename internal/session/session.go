package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/julianstephens/pillminder/internal/logger"
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/schedule"
	"github.com/julianstephens/pillminder/internal/utils"
)

var (
	// ErrReadOnly is returned for any mutation attempted through a share token.
	ErrReadOnly = errors.New("caregiver view is read-only")
	// ErrIncompleteDraft means name, dosage or times are missing; nothing was sent.
	ErrIncompleteDraft = errors.New("name, dosage and at least one time are required")
)

// Backend is every endpoint a session uses.
type Backend interface {
	schedule.Source
	CreateMedication(ctx context.Context, med models.NewMedication) (*models.Medication, error)
	ListIntakes(ctx context.Context) ([]models.Intake, error)
	LogIntake(ctx context.Context, intake models.NewIntake) (*models.Intake, error)
	CreateShareLink(ctx context.Context) (*models.ShareLink, error)
	GetSharedIntakes(ctx context.Context, token string) ([]models.Intake, error)
}

// Session ties one view mode to the backend and owns the refresh counter.
// Every successful mutation bumps the counter exactly once; views reload
// whenever the value they last saw differs from Refresh().
type Session struct {
	mode    models.Mode
	backend Backend
	builder *schedule.Builder
	refresh atomic.Uint64
	now     func() time.Time
}

func New(backend Backend, mode models.Mode) *Session {
	return &Session{
		mode:    mode,
		backend: backend,
		builder: schedule.New(backend, mode),
		now:     time.Now,
	}
}

// WithClock overrides the clock for the session and its schedule builder.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	s.builder.WithClock(now)
	return s
}

func (s *Session) Mode() models.Mode { return s.mode }

func (s *Session) Builder() *schedule.Builder { return s.builder }

// Refresh returns the current value of the refresh counter.
func (s *Session) Refresh() uint64 { return s.refresh.Load() }

// Bump increments the refresh counter and returns the new value.
func (s *Session) Bump() uint64 {
	v := s.refresh.Add(1)
	logger.Debug("Refresh signal", "value", v)
	return v
}

// Today loads today's medications and schedule for the session's mode.
func (s *Session) Today(ctx context.Context) (schedule.Day, error) {
	return s.builder.Today(ctx)
}

// ScheduleFor loads the schedule for date; empty means today.
func (s *Session) ScheduleFor(ctx context.Context, date string) (*models.Schedule, error) {
	return s.builder.For(ctx, date)
}

// Medications lists the owner's medications, or the ones reconstructed from
// today's shared schedule for a caregiver.
func (s *Session) Medications(ctx context.Context) ([]models.Medication, error) {
	if !s.mode.ReadOnly() {
		return s.backend.ListMedications(ctx)
	}
	day, err := s.builder.Today(ctx)
	if err != nil {
		return nil, err
	}
	return day.Medications, nil
}

// History lists logged intakes.
func (s *Session) History(ctx context.Context) ([]models.Intake, error) {
	if token, shared := s.mode.Shared(); shared {
		return s.backend.GetSharedIntakes(ctx, token)
	}
	return s.backend.ListIntakes(ctx)
}

// AddMedication submits the draft. On success the draft is reset to its
// defaults and the refresh counter is bumped once.
func (s *Session) AddMedication(ctx context.Context, d *models.Draft) (*models.Medication, error) {
	if s.mode.ReadOnly() {
		return nil, ErrReadOnly
	}
	if !d.Ready() {
		return nil, ErrIncompleteDraft
	}

	med, err := s.backend.CreateMedication(ctx, d.Medication())
	if err != nil {
		return nil, fmt.Errorf("add medication: %w", err)
	}

	d.Reset()
	s.Bump()
	logger.Info("Medication added", "id", med.ID, "name", med.Name)
	return med, nil
}

// MarkTaken logs an intake for today's local date at the current instant.
// The refresh counter is bumped whether or not the request succeeds.
func (s *Session) MarkTaken(ctx context.Context, medicationID models.ID, doseTime string) (*models.Intake, error) {
	if s.mode.ReadOnly() {
		return nil, ErrReadOnly
	}

	now := s.now()
	intake, err := s.backend.LogIntake(ctx, models.NewIntake{
		MedicationID: medicationID,
		Time:         doseTime,
		Date:         utils.Today(now),
		TakenAt:      utils.ISOTimestamp(now),
	})
	s.Bump()
	if err != nil {
		return nil, fmt.Errorf("mark taken: %w", err)
	}
	logger.Info("Dose marked taken", "medication_id", medicationID, "time", doseTime)
	return intake, nil
}

// CreateShareLink requests a new token and returns the URL to hand out.
func (s *Session) CreateShareLink(ctx context.Context, origin string) (string, error) {
	if s.mode.ReadOnly() {
		return "", ErrReadOnly
	}

	link, err := s.backend.CreateShareLink(ctx)
	if err != nil {
		return "", fmt.Errorf("create share link: %w", err)
	}
	return link.Resolve(origin), nil
}
