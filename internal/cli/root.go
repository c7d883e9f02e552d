// Package cli implements the command-line interface for giiker.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/giiker_ble_library/internal/store"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath     string
	verbose    bool
	deviceAddr string
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "giiker",
	Short: "GiiKER Smart Cube Tool",
	Long: `GiiKER Smart Cube Tool - A CLI for GiiKER/Supercube i2 and i3 smart cubes.

Scan for cubes over Bluetooth, decode their telemetry into facelet
strings, query battery and lifetime move counters, and watch state
changes live.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.giiker/giiker.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&deviceAddr, "device", "d", "", "BLE address of the cube to use (default: first found)")
}

// newLogger returns the logger commands pass down the stack. Verbose
// mode switches it to debug level.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore opens and migrates the database from the --db flag or the
// default path.
func openStore() (*store.DB, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = store.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
