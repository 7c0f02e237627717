// Package status keeps the studio's open/closed display surfaces current.
//
// An Adapter evaluates the weekly schedule on a fixed period (and whenever a
// viewer asks for a refresh) and hands the same Snapshot to every Surface.
package status

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ink102/studio-status/internal/hours"
	"github.com/ink102/studio-status/internal/scheduler"
)

const (
	DefaultRefreshInterval = time.Minute
	refreshJobName         = "business_status_refresh"
)

var (
	ErrNoScheduler    = errors.New("status adapter requires a scheduler")
	ErrAlreadyStarted = errors.New("status adapter already started")
	ErrStopped        = errors.New("status adapter stopped")
)

// Surface is one place the status is shown. Render is called with the
// adapter's lock held and must not call back into the adapter.
type Surface interface {
	Render(Snapshot) error
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(Snapshot) error

func (f SurfaceFunc) Render(s Snapshot) error { return f(s) }

// Snapshot is the result of one evaluation tick.
type Snapshot struct {
	Tick        uint64
	EvaluatedAt time.Time
	LocalTime   string
	NextRefresh time.Time
	Result      hours.Result
}

// Options are the adapter's collaborators. Clock defaults to the real clock,
// Location to UTC, Policy to hours.DefaultPolicy and Interval to one minute.
// Cron, when set, replaces Interval.
type Options struct {
	Clock     clockwork.Clock
	Location  *time.Location
	Schedule  hours.WeeklySchedule
	Policy    *hours.Policy
	Scheduler *scheduler.Service
	Interval  time.Duration
	Cron      string
	Surfaces  []Surface
}

// Adapter owns the refresh cycle for a set of surfaces.
type Adapter struct {
	clock    clockwork.Clock
	location *time.Location
	schedule hours.WeeklySchedule
	policy   hours.Policy
	sched    *scheduler.Service
	interval time.Duration
	cronExpr string
	cronSpec cron.Schedule
	surfaces []Surface
	logger   zerolog.Logger

	mu     sync.RWMutex
	tick   uint64
	latest Snapshot

	lifecycle sync.Mutex
	job       gocron.Job
	stopped   bool
}

// New validates opts and returns an idle adapter.
func New(opts Options) (*Adapter, error) {
	a := &Adapter{
		clock:    opts.Clock,
		location: opts.Location,
		schedule: opts.Schedule,
		policy:   hours.DefaultPolicy(),
		sched:    opts.Scheduler,
		interval: opts.Interval,
		cronExpr: strings.TrimSpace(opts.Cron),
		surfaces: append([]Surface(nil), opts.Surfaces...),
		logger:   log.With().Str("component", "business_status").Logger(),
	}
	if a.clock == nil {
		a.clock = clockwork.NewRealClock()
	}
	if a.location == nil {
		a.location = time.UTC
	}
	if opts.Policy != nil {
		a.policy = *opts.Policy
	}
	if a.interval <= 0 {
		a.interval = DefaultRefreshInterval
	}
	if a.cronExpr != "" {
		spec, err := cron.ParseStandard(a.cronExpr)
		if err != nil {
			return nil, fmt.Errorf("parse refresh cron %q: %w", a.cronExpr, err)
		}
		a.cronSpec = spec
	}
	if a.schedule.IsClosedAllWeek() {
		a.logger.Warn().Msg("Weekly schedule has no opening hours")
	}
	return a, nil
}

// Start renders immediately and then registers the recurring refresh.
func (a *Adapter) Start() error {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()

	if a.stopped {
		return ErrStopped
	}
	if a.job != nil {
		return ErrAlreadyStarted
	}
	if a.sched == nil {
		return ErrNoScheduler
	}

	a.Refresh()

	task := func() { a.Refresh() }
	singleton := gocron.WithSingletonMode(gocron.LimitModeReschedule)

	var (
		job gocron.Job
		err error
	)
	if a.cronSpec != nil {
		job, err = a.sched.AddJob(refreshJobName, a.cronExpr, task, singleton)
	} else {
		job, err = a.sched.AddIntervalJob(refreshJobName, a.interval, task, singleton)
	}
	if err != nil {
		return fmt.Errorf("register status refresh: %w", err)
	}
	a.job = job

	a.logger.Info().
		Int("surfaces", len(a.surfaces)).
		Str("location", a.location.String()).
		Msg("Business status adapter started")
	return nil
}

// Stop cancels future refreshes. It is safe to call more than once and
// before Start.
func (a *Adapter) Stop() error {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()

	if a.stopped {
		return nil
	}
	a.stopped = true
	if a.job == nil {
		return nil
	}
	job := a.job
	a.job = nil
	if err := a.sched.RemoveJob(job); err != nil {
		return fmt.Errorf("remove status refresh: %w", err)
	}
	a.logger.Info().Msg("Business status adapter stopped")
	return nil
}

// Refresh evaluates now and pushes the snapshot to every surface.
func (a *Adapter) Refresh() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	in := hours.InstantAt(a.clock.Now(), a.location)
	a.tick++
	snap := Snapshot{
		Tick:        a.tick,
		EvaluatedAt: in.Time,
		LocalTime:   hours.FormatClock(in.Time),
		NextRefresh: a.nextRefresh(in.Time),
		Result:      hours.Evaluate(in, a.schedule, a.policy),
	}
	a.latest = snap

	for i, surface := range a.surfaces {
		if surface == nil {
			continue
		}
		if err := render(surface, snap); err != nil {
			a.logger.Warn().
				Err(err).
				Int("surface", i).
				Uint64("tick", snap.Tick).
				Msg("Status surface update skipped")
		}
	}
	return snap
}

// Latest returns the most recent snapshot, false before the first tick.
func (a *Adapter) Latest() (Snapshot, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.latest, a.tick > 0
}

// Current returns Latest, refreshing first when nothing has been evaluated.
func (a *Adapter) Current() Snapshot {
	if snap, ok := a.Latest(); ok {
		return snap
	}
	return a.Refresh()
}

// EvaluateAt classifies t against the adapter's schedule and policy without
// advancing the tick or touching any surface.
func (a *Adapter) EvaluateAt(t time.Time) (hours.Instant, hours.Result) {
	in := hours.InstantAt(t, a.location)
	return in, hours.Evaluate(in, a.schedule, a.policy)
}

// Schedule returns the schedule the adapter evaluates against.
func (a *Adapter) Schedule() hours.WeeklySchedule {
	return a.schedule
}

// Location returns the studio's time zone.
func (a *Adapter) Location() *time.Location {
	return a.location
}

func (a *Adapter) nextRefresh(now time.Time) time.Time {
	if a.cronSpec != nil {
		return a.cronSpec.Next(now)
	}
	return now.Add(a.interval)
}

func render(surface Surface, snap Snapshot) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("surface panicked: %v", r)
		}
	}()
	return surface.Render(snap)
}
