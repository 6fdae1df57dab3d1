// Package commands implements the expense-tracker subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/cli/config"
	"github.com/ProgrammerSahilG/Expense-tracker/internal/store"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Store  *store.SQLiteStore
}

// NewCommandContext creates a CommandContext with an opened, migrated
// store. Returns the context and a cleanup function that must be called
// (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = st.Close()
	}

	return &CommandContext{
		Cfg:    cfg,
		Logger: logger,
		Store:  st,
	}, cleanup, nil
}

// getConfig returns the current configuration, falling back to
// environment variables when no config was loaded (e.g. direct command
// construction in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		DatabasePath: getEnvOrDefault("EXPENSES_DATABASE_PATH", config.DefaultDatabaseFile),
		Port:         config.DefaultPort,
		Currency:     getEnvOrDefault("EXPENSES_CURRENCY", config.DefaultCurrency),
		OutputFormat: getEnvOrDefault("EXPENSES_OUTPUT", config.DefaultOutput),
		Verbose:      os.Getenv("EXPENSES_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openStore opens the SQLite database, creating its directory and
// running migrations as needed.
func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	if cfg.DatabasePath != ":memory:" {
		dir := filepath.Dir(cfg.DatabasePath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	st := store.NewSQLiteStore()
	if err := st.Open(cfg.DatabasePath); err != nil {
		return nil, err
	}
	if err := st.Migrate(); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}
