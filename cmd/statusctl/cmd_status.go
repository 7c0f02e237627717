package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ink102/studio-status/internal/config"
	"github.com/ink102/studio-status/internal/db"
	"github.com/ink102/studio-status/internal/hours"
)

var atFlag string

// statusCmd evaluates the schedule once
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current business status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

// hoursCmd prints the week
var hoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "Print the weekly opening hours",
	Args:  cobra.NoArgs,
	RunE:  runHours,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	schedule, err := scheduleFor(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	at := time.Now()
	if atFlag != "" {
		at, err = time.Parse(time.RFC3339, atFlag)
		if err != nil {
			return fmt.Errorf("--at must be an RFC 3339 timestamp: %w", err)
		}
	}

	in := hours.InstantAt(at, loc)
	result := hours.Evaluate(in, schedule, policy)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", result.Headline, result.Classification)
	fmt.Fprintf(out, "%s\n", result.Detail)
	fmt.Fprintf(out, "Local time: %s %s %s\n", in.Day, hours.FormatClock(in.Time), loc)
	return nil
}

func runHours(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	schedule, err := scheduleFor(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "DAY\tOPENS\tCLOSES\n")
	for _, day := range schedule.Days() {
		if !day.Open {
			fmt.Fprintf(w, "%s\tclosed\t\n", day.Weekday)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", day.Weekday, hours.FormatHour(day.Hours.Open), hours.FormatHour(day.Hours.Close))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Times are %s\n", loc)
	return nil
}

// scheduleFor reads the schedule from wherever hours.source points.
func scheduleFor(ctx context.Context, cfg *config.Config) (hours.WeeklySchedule, error) {
	if cfg.Hours.Source != config.HoursSourceSQLite {
		return cfg.Schedule()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		return hours.WeeklySchedule{}, err
	}
	defer database.Close()
	return database.LoadSchedule(ctx)
}
