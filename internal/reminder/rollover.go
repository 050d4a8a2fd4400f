package reminder

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/pillminder/internal/constants"
)

// Rollover runs a job at every local midnight so long-running sessions pick
// up the new day's schedule. The scheduler itself never looks past today.
type Rollover struct {
	cron *cron.Cron
}

func NewRollover(loc *time.Location) *Rollover {
	return &Rollover{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// Start registers reload and starts the cron loop.
func (r *Rollover) Start(reload func()) error {
	if _, err := r.cron.AddFunc(constants.RolloverSpec, reload); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Next returns when the next rollover will run.
func (r *Rollover) Next() time.Time {
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (r *Rollover) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
