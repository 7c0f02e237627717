package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ink102/studio-status/internal/config"
	"github.com/ink102/studio-status/internal/db"
)

// dbCmd groups database maintenance commands
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the business hours database",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back schema migrations",
}

var dbMigrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migrate.Migrate) error {
			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migration up failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		})
	},
}

var dbMigrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migrate.Migrate) error {
			if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migration down failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations rolled back")
			return nil
		})
	},
}

var dbMigrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migrate.Migrate) error {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Fprintln(cmd.OutOrStdout(), "Version: none")
				return nil
			}
			if err != nil {
				return fmt.Errorf("get version failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %d, Dirty: %v\n", version, dirty)
			return nil
		})
	},
}

// dbSeedCmd copies hours.days from the config file into the database
var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace stored hours with the ones in the config file",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadDatabaseConfig()
	if err != nil {
		return err
	}
	schedule, err := cfg.Schedule()
	if err != nil {
		return err
	}
	if schedule.IsClosedAllWeek() {
		return fmt.Errorf("config has no opening hours to seed")
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := database.ReplaceSchedule(ctx, schedule); err != nil {
		return err
	}

	log.Info().Str("filename", cfg.Database.Filename).Msg("Seeded business hours")
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded business hours into %s\n", cfg.Database.Filename)
	return nil
}

func withMigrator(fn func(*migrate.Migrate) error) error {
	cfg, err := loadDatabaseConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Filename), 0755); err != nil {
		return fmt.Errorf("error creating database directory: %w", err)
	}

	sqlDB, err := db.Open(cfg.Database.Filename)
	if err != nil {
		return err
	}
	m, err := db.NewMigrator(sqlDB)
	if err != nil {
		sqlDB.Close()
		return err
	}
	defer m.Close()

	return fn(m)
}

func loadDatabaseConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Database.Driver == "" {
		return nil, fmt.Errorf("config %s has no database section", configPath)
	}
	return cfg, nil
}
