// Package main implements the entry point for the cake API server, a CRUD
// REST service for cakes backed by memory, PostgreSQL or SQLite storage.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/cake-api/internal/config"
	"github.com/phrazzld/cake-api/internal/platform/logger"
	"github.com/phrazzld/cake-api/internal/platform/migrations"
	"github.com/spf13/cobra"
)

// configFile is set by the --config flag.
var configFile string

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cake-api",
		Short:         "Cake API server",
		Long:          `A REST API for listing, creating, updating and deleting cakes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "config file (default: ./config.yaml if present)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate <up|down|status|version|reset>",
		Short: "Run database migrations",
		Long: `Migrate applies or inspects the embedded schema migrations against the
configured SQL database. It is not available for the memory driver.

Example:
  cake-api migrate up
  cake-api migrate status --config ./config.yaml`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrations.Commands,
		RunE:      runMigrate,
	}

	rootCmd.AddCommand(serveCmd, migrateCmd)
	return rootCmd
}

// initialize loads configuration and sets up structured logging.
func initialize() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"driver", cfg.Database.Driver,
		"cache_enabled", cfg.Cache.Enabled())

	return cfg, l, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, l, err := initialize()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, l, err := initialize()
	if err != nil {
		return err
	}

	return migrateDatabase(cmd.Context(), cfg, args[0], l)
}
