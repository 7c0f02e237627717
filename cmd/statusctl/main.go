// cmd/statusctl/main.go
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "statusctl",
	Short: "Inspect the studio's business hours and status",
	Long: `statusctl evaluates the configured weekly schedule and manages the
business hours database.

Available subcommands:
  status - Show whether the studio is open now or at --at
  hours  - Print the weekly opening hours
  db     - Run migrations and seed hours into SQLite`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to the YAML config file")

	statusCmd.Flags().StringVar(&atFlag, "at", "", "evaluate at this RFC 3339 time instead of now")

	dbMigrateCmd.AddCommand(dbMigrateUpCmd, dbMigrateDownCmd, dbMigrateVersionCmd)
	dbCmd.AddCommand(dbMigrateCmd, dbSeedCmd)
	rootCmd.AddCommand(statusCmd, hoursCmd, dbCmd)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
