package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/web"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var (
		port  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long: `Start the expense tracker web UI.

The server runs until interrupted (Ctrl+C) and shuts down gracefully.
With --watch, templates are reloaded from disk on change (useful when
working from a source checkout).`,
		Example: `  # Serve on the configured port
  expense-tracker serve

  # Serve on a specific port with template reload
  expense-tracker serve --port 9000 --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			version, err := cmdCtx.Store.MigrationVersion()
			if err != nil {
				return err
			}
			cmdCtx.Logger.Debug("database ready", "schema_version", version)

			cfg := cmdCtx.Cfg
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("watch") {
				cfg.Watch = watch
			}

			srv := web.NewServer(web.Config{
				Store:         cmdCtx.Store,
				Port:          cfg.Port,
				Watch:         cfg.Watch,
				SessionSecret: cfg.SessionSecret,
				Currency:      cfg.Currency,
				Logger:        cmdCtx.Logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Serve(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to serve on (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload templates from disk on change")

	return cmd
}
