package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"delivery-route-sequencer/internal/config"
	"delivery-route-sequencer/internal/platform/db"
	"delivery-route-sequencer/internal/platform/obs"

	"github.com/spf13/cobra"
)

var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "routectl",
	Short: "Delivery route tooling",
	Long: `routectl manages the order database and sequences delivery routes offline.
The plan and label commands work on QR payload files and need no network access.`,
	SilenceUsage:      true,
	PersistentPreRunE: persistentPreRun,
}

func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	obs.SetupLogger(cfg.LogLevel, true)
	return nil
}

// openDatabase connects using DATABASE_URL or DB_PATH.
func openDatabase() (*sql.DB, db.Dialect, error) {
	if cfg.DatabaseURL == "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, "", fmt.Errorf("create database directory: %w", err)
		}
	}
	return db.Open(cfg.DatabaseURL, cfg.DBPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
