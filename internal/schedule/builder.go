package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/utils"
)

// Source is the subset of the backend the builder reads from.
type Source interface {
	ListMedications(ctx context.Context) ([]models.Medication, error)
	GetSchedule(ctx context.Context, date string) (*models.Schedule, error)
	GetSharedSchedule(ctx context.Context, token, date string) (*models.Schedule, error)
}

// Day is everything the "today" views need. Either half may be missing when
// its request failed; callers keep their previous state for that half.
type Day struct {
	Medications    []models.Medication
	HasMedications bool
	Schedule       *models.Schedule
}

// Builder produces the same shapes for the owner and for a caregiver.
type Builder struct {
	source Source
	mode   models.Mode
	now    func() time.Time
}

func New(source Source, mode models.Mode) *Builder {
	return &Builder{source: source, mode: mode, now: time.Now}
}

// WithClock overrides the clock used to decide what "today" is.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Mode returns the session mode the builder was created for.
func (b *Builder) Mode() models.Mode { return b.mode }

// TodayDate is the local calendar date right now.
func (b *Builder) TodayDate() string {
	return utils.Today(b.now())
}

// Today loads today's medications and schedule.
func (b *Builder) Today(ctx context.Context) (Day, error) {
	today := b.TodayDate()

	if token, shared := b.mode.Shared(); shared {
		sched, err := b.source.GetSharedSchedule(ctx, token, today)
		if err != nil {
			return Day{}, err
		}
		return Day{Medications: Group(sched.Items), HasMedications: true, Schedule: sched}, nil
	}

	var (
		wg       sync.WaitGroup
		day      Day
		medsErr  error
		schedErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		meds, err := b.source.ListMedications(ctx)
		if err != nil {
			medsErr = err
			return
		}
		day.Medications, day.HasMedications = meds, true
	}()
	go func() {
		defer wg.Done()
		day.Schedule, schedErr = b.source.GetSchedule(ctx, today)
	}()
	wg.Wait()

	return day, errors.Join(medsErr, schedErr)
}

// For loads the schedule for a date, defaulting to today.
func (b *Builder) For(ctx context.Context, date string) (*models.Schedule, error) {
	if date == "" {
		date = b.TodayDate()
	}
	if token, shared := b.mode.Shared(); shared {
		return b.source.GetSharedSchedule(ctx, token, date)
	}
	return b.source.GetSchedule(ctx, date)
}

// Group folds flat schedule entries back into per-medication records,
// preserving first-seen order. Only id, name, dosage and times can be
// recovered; notes and days stay absent.
func Group(items []models.ScheduleItem) []models.Medication {
	meds := make([]models.Medication, 0)
	index := make(map[models.ID]int)

	for _, item := range items {
		i, seen := index[item.MedicationID]
		if !seen {
			i = len(meds)
			index[item.MedicationID] = i
			meds = append(meds, models.Medication{
				ID:     item.MedicationID,
				Name:   item.Name,
				Dosage: item.Dosage,
			})
		}
		meds[i].Times = append(meds[i].Times, item.Time)
	}
	return meds
}
