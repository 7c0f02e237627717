package scheduler

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotInitialized = errors.New("scheduler not initialized")
	ErrEmptyJobName   = errors.New("job name is required")
	ErrEmptyCronExpr  = errors.New("cron expression is required")
	ErrInvalidPeriod  = errors.New("job interval must be positive")
)

// Service wraps a gocron scheduler owned by the server process.
type Service struct {
	scheduler gocron.Scheduler
	startOnce sync.Once
	stopOnce  sync.Once
	stopErr   error
}

type options struct {
	clock    clockwork.Clock
	location *time.Location
}

// Option configures New.
type Option func(*options)

// WithClock drives job timing from clock instead of the wall clock.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithLocation evaluates cron expressions in loc.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.location = loc }
}

// New builds a scheduler. Jobs do not run until Start.
func New(opts ...Option) (*Service, error) {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	schedOpts := []gocron.SchedulerOption{
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("Scheduler job panicked")
				}),
			),
		),
	}
	if cfg.clock != nil {
		schedOpts = append(schedOpts, gocron.WithClock(cfg.clock))
	}
	if cfg.location != nil {
		schedOpts = append(schedOpts, gocron.WithLocation(cfg.location))
	}

	sched, err := gocron.NewScheduler(schedOpts...)
	if err != nil {
		return nil, err
	}
	log.Info().Msg("Scheduler initialized")
	return &Service{scheduler: sched}, nil
}

// Start begins running scheduled jobs.
func (s *Service) Start() {
	if s == nil {
		log.Error().Msg("Scheduler start requested before initialization")
		return
	}
	s.startOnce.Do(func() {
		log.Info().Msg("Scheduler starting")
		s.scheduler.Start()
	})
}

// Stop shuts down the scheduler and prevents new jobs from running.
func (s *Service) Stop() error {
	if s == nil {
		return ErrNotInitialized
	}
	s.stopOnce.Do(func() {
		log.Info().Msg("Scheduler stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}

// AddJob registers a cron-based job with the scheduler.
func (s *Service) AddJob(name, cronExpr string, task func(), opts ...gocron.JobOption) (gocron.Job, error) {
	if s == nil {
		return nil, ErrNotInitialized
	}
	if strings.TrimSpace(cronExpr) == "" {
		return nil, ErrEmptyCronExpr
	}
	return s.add(name, gocron.CronJob(cronExpr, false), log.With().Str("cron", cronExpr), task, opts)
}

// AddIntervalJob registers a job that runs every period.
func (s *Service) AddIntervalJob(name string, period time.Duration, task func(), opts ...gocron.JobOption) (gocron.Job, error) {
	if s == nil {
		return nil, ErrNotInitialized
	}
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	return s.add(name, gocron.DurationJob(period), log.With().Dur("interval", period), task, opts)
}

// RemoveJob unregisters job; later runs are not scheduled.
func (s *Service) RemoveJob(job gocron.Job) error {
	if s == nil {
		return ErrNotInitialized
	}
	if job == nil {
		return nil
	}
	if err := s.scheduler.RemoveJob(job.ID()); err != nil {
		return err
	}
	log.Info().Str("job_id", job.ID().String()).Str("job_name", job.Name()).Msg("Scheduler job removed")
	return nil
}

// Jobs returns the currently registered jobs.
func (s *Service) Jobs() []gocron.Job {
	if s == nil {
		return nil
	}
	return s.scheduler.Jobs()
}

func (s *Service) add(name string, def gocron.JobDefinition, logCtx zerolog.Context, task func(), opts []gocron.JobOption) (gocron.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}
	jobLogger := logCtx.Str("job_name", name).Logger()
	jobLogger.Info().Msg("Registering scheduler job")

	wrappedTask := func() {
		jobLogger.Debug().Msg("Scheduler job started")
		task()
		jobLogger.Debug().Msg("Scheduler job completed")
	}

	jobOpts := append([]gocron.JobOption{gocron.WithName(name)}, opts...)
	job, err := s.scheduler.NewJob(def, gocron.NewTask(wrappedTask), jobOpts...)
	if err != nil {
		jobLogger.Error().Err(err).Msg("Failed to register scheduler job")
		return nil, err
	}
	jobLogger.Info().Msg("Scheduler job registered")
	return job, nil
}
