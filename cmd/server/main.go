// Package main implements the entry point for the recite server, a web app
// that walks a user through memorizing text one sentence at a time.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/recite/internal/config"
	"github.com/phrazzld/recite/internal/platform/postgres"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCommand builds the CLI. Running it without a subcommand serves the
// app.
func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "recite",
		Short:         "Memorize text one sentence at a time",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configFile)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is ./config.yaml when present)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), configFile)
			},
		},
		&cobra.Command{
			Use:       "migrate [up|down|status]",
			Short:     "Manage the postgres session table",
			Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
			ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus},
			RunE: func(cmd *cobra.Command, args []string) error {
				command := postgres.MigrateUp
				if len(args) == 1 {
					command = args[0]
				}
				return runMigrate(cmd.Context(), configFile, command)
			},
		},
	)

	return root
}

// loadAppConfig loads the configuration and sets up the application logger.
func loadAppConfig(configFile string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := setupAppLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	l.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("session_backend", cfg.Session.Backend),
		slog.String("translation_provider", cfg.Translation.Provider),
		slog.String("speech_provider", cfg.Speech.Provider))
	if cfg.Session.Secret == config.PlaceholderSecret {
		l.Warn("using the placeholder session secret; set RECITE_SESSION_SECRET outside local development")
	}

	return cfg, l, nil
}

func runServe(ctx context.Context, configFile string) error {
	cfg, l, err := loadAppConfig(configFile)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.Run(ctx)
}

func runMigrate(ctx context.Context, configFile, command string) error {
	cfg, l, err := loadAppConfig(configFile)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database.url (RECITE_DATABASE_URL) is required for migrations")
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}()

	return postgres.Migrate(ctx, db, command, l)
}
