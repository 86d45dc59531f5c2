/*
scheduler.go - Holiday cache warmer

PURPOSE:
  Keeps the shared holiday cache populated for the current year and the
  next few, so request handling never computes a year's rules on the hot
  path. Runs once at start, then on a cron schedule (default "@daily").

CONFIGURATION:
  - YearsAhead: years after the current one to warm (default: 2)
  - Schedule: standard 5-field cron spec or a descriptor ("@daily")

USAGE:
  warmer, err := NewHolidayWarmer(cache, 2, "@daily", log)
  warmer.Start()
  // ... later
  <-warmer.Stop().Done()

SEE ALSO:
  - calendar/holidays.go: HolidayCache
*/
package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/warp/paperwork-calendar/calendar"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule validates a warmer schedule.
func ParseSchedule(spec string) (cron.Schedule, error) {
	s, err := scheduleParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("holiday warm schedule %q: %w", spec, err)
	}
	return s, nil
}

// HolidayWarmer periodically populates a HolidayCache.
type HolidayWarmer struct {
	Cache      *calendar.HolidayCache
	YearsAhead int

	schedule cron.Schedule
	log      zerolog.Logger
	now      func() time.Time

	mu      sync.Mutex
	c       *cron.Cron
	lastRun time.Time
}

// NewHolidayWarmer creates a warmer; the schedule is validated here.
func NewHolidayWarmer(cache *calendar.HolidayCache, yearsAhead int, spec string, log zerolog.Logger) (*HolidayWarmer, error) {
	sched, err := ParseSchedule(spec)
	if err != nil {
		return nil, err
	}
	if yearsAhead < 0 {
		yearsAhead = 0
	}
	return &HolidayWarmer{
		Cache:      cache,
		YearsAhead: yearsAhead,
		schedule:   sched,
		log:        log,
		now:        time.Now,
	}, nil
}

// Start warms immediately, then on the schedule. Calling Start twice is a no-op.
func (hw *HolidayWarmer) Start() {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	if hw.c != nil {
		return
	}

	hw.warm()
	hw.c = cron.New(cron.WithParser(scheduleParser), cron.WithLocation(time.UTC))
	hw.c.Schedule(hw.schedule, cron.FuncJob(func() {
		hw.mu.Lock()
		defer hw.mu.Unlock()
		hw.warm()
	}))
	hw.c.Start()
	hw.log.Info().Int("years_ahead", hw.YearsAhead).Msg("holiday warmer started")
}

// Stop halts the schedule. The returned context is done once a running
// warm has finished.
func (hw *HolidayWarmer) Stop() context.Context {
	hw.mu.Lock()
	c := hw.c
	hw.c = nil
	hw.mu.Unlock()

	if c == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	hw.log.Info().Msg("holiday warmer stopped")
	return c.Stop()
}

// WarmNow warms the cache synchronously and returns the years covered.
func (hw *HolidayWarmer) WarmNow() []int {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	return hw.warm()
}

// LastRun is the time of the most recent warm, zero before the first.
func (hw *HolidayWarmer) LastRun() time.Time {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	return hw.lastRun
}

// warm must be called with mu held.
func (hw *HolidayWarmer) warm() []int {
	now := hw.now()
	first := now.Year()
	years := make([]int, 0, hw.YearsAhead+1)
	for y := first; y <= first+hw.YearsAhead; y++ {
		years = append(years, y)
	}
	hw.Cache.Warm(years...)
	hw.lastRun = now
	hw.log.Debug().Ints("years", years).Msg("holiday cache warmed")
	return years
}
