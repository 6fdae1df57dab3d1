package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/cli/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize an expense tracker project",
		Long: `Initialize an expense tracker project with a default configuration.

This creates:
  - expenses.yaml configuration file
  - the data directory for the SQLite database`,
		Example: `  # Initialize in the current directory
  expense-tracker init

  # Initialize in a new directory
  expense-tracker init my-expenses

  # Overwrite an existing config
  expense-tracker init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "expenses.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("expenses.yaml already exists. Use --force to overwrite")
	}

	defaults := map[string]any{
		"database_path": config.DefaultDatabaseFile,
		"port":          config.DefaultPort,
		"currency":      config.DefaultCurrency,
		"output":        config.DefaultOutput,
	}
	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	dataDir := filepath.Join(dir, filepath.Dir(config.DefaultDatabaseFile))
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized expense tracker project in %s\n", dir)
	fmt.Fprintf(out, "  created %s\n", configPath)
	fmt.Fprintf(out, "  created %s/\n", dataDir)
	return nil
}
