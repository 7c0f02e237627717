// cmd/server/server.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/ink102/studio-status/internal/api"
	"github.com/ink102/studio-status/internal/api/operatinghours"
	statusapi "github.com/ink102/studio-status/internal/api/status"
	"github.com/ink102/studio-status/internal/config"
	"github.com/ink102/studio-status/internal/db"
	"github.com/ink102/studio-status/internal/hours"
	"github.com/ink102/studio-status/internal/ratelimit"
	"github.com/ink102/studio-status/internal/scheduler"
	"github.com/ink102/studio-status/internal/status"
	statustempl "github.com/ink102/studio-status/internal/templates/components/status"
)

const (
	scheduleLoadTimeout = 5 * time.Second
	refreshCooldown     = 5 * time.Second
	refreshMaxPerHour   = 120
)

// app holds everything the server owns between start and shutdown.
type app struct {
	server   *http.Server
	sched    *scheduler.Service
	adapter  *status.Adapter
	limiter  *ratelimit.Limiter
	database *db.DB
}

func newApp(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	interval, err := cfg.RefreshInterval()
	if err != nil {
		return nil, err
	}

	schedule, database, err := loadSchedule(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sched, err := scheduler.New(scheduler.WithClock(clock), scheduler.WithLocation(loc))
	if err != nil {
		closeDatabase(database)
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	display := status.NewDisplay()
	adapter, err := status.New(status.Options{
		Clock:     clock,
		Location:  loc,
		Schedule:  schedule,
		Policy:    &policy,
		Scheduler: sched,
		Interval:  interval,
		Cron:      cfg.Status.RefreshCron,
		Surfaces:  []status.Surface{display, status.NewTransitionLog()},
	})
	if err != nil {
		_ = sched.Stop()
		closeDatabase(database)
		return nil, fmt.Errorf("create status adapter: %w", err)
	}

	palette := cfg.Status.Colors.WithDefaults()
	statusapi.InitHandlers(statusapi.Options{
		Adapter: adapter,
		Display: display,
		Palette: &palette,
		Title:   cfg.App.Name,
	})
	operatinghours.InitHandlers(adapter)

	limiter := ratelimit.New(&ratelimit.Config{
		Cooldown:   refreshCooldown,
		MaxPerHour: refreshMaxPerHour,
		TrustProxy: cfg.Features.TrustProxy,
		Clock:      clock,
	})

	return &app{
		server:   newServer(cfg.App.Port, limiter),
		sched:    sched,
		adapter:  adapter,
		limiter:  limiter,
		database: database,
	}, nil
}

// loadSchedule reads the weekly hours from the configured source. The
// database is returned open only when it is the source.
func loadSchedule(ctx context.Context, cfg *config.Config) (hours.WeeklySchedule, *db.DB, error) {
	if cfg.Hours.Source != config.HoursSourceSQLite {
		schedule, err := cfg.Schedule()
		return schedule, nil, err
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		return hours.WeeklySchedule{}, nil, fmt.Errorf("open database: %w", err)
	}

	loadCtx, cancel := context.WithTimeout(ctx, scheduleLoadTimeout)
	defer cancel()

	schedule, err := database.LoadSchedule(loadCtx)
	if err != nil {
		closeDatabase(database)
		return hours.WeeklySchedule{}, nil, err
	}
	log.Info().Str("filename", cfg.Database.Filename).Msg("Loaded business hours from database")
	return schedule, database, nil
}

func closeDatabase(database *db.DB) {
	if database == nil {
		return
	}
	if err := database.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close database")
	}
}

func (a *app) start() error {
	if err := a.adapter.Start(); err != nil {
		return err
	}
	a.sched.Start()
	return nil
}

// shutdown stops the HTTP server before the refresh job and the scheduler.
func (a *app) shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown error: %w", err))
	}
	if err := a.adapter.Stop(); err != nil {
		errs = append(errs, err)
	}
	if err := a.sched.Stop(); err != nil {
		errs = append(errs, err)
	}
	a.limiter.Close()
	closeDatabase(a.database)
	return errors.Join(errs...)
}

func newServer(port int, limiter *ratelimit.Limiter) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithRecovery,
		api.WithLogging,
		api.WithRequestID,
		api.WithContentType,
	)

	// Register routes
	registerRoutes(router, limiter)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, limiter *ratelimit.Limiter) {
	// Main page handler
	mux.HandleFunc("/", statusapi.HandlePage)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Business status routes
	mux.HandleFunc("/api/v1/status", statusapi.HandleStatus)
	mux.HandleFunc(statustempl.BannerPath, statusapi.HandleBanner)
	mux.HandleFunc(statustempl.IndicatorPath, statusapi.HandleIndicator)
	mux.Handle(statustempl.RefreshPath, limiter.Middleware(http.HandlerFunc(statusapi.HandleRefresh)))

	// Operating hours routes
	mux.HandleFunc("/api/v1/hours", operatinghours.HandleWeek)
}
