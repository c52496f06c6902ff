// main is the entry point of the terminal registration client.
//
// The client shows the course table and registration form in the
// terminal. By default it talks to a running registration-server; with
// --local it opens the SQLite database directly.
//
//	go run ./cmd/registration-client --config=config/local.yaml
//	go run ./cmd/registration-client --config=config/local.yaml --local
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aanand-mishra/course-registration/internal/config"
	"github.com/aanand-mishra/course-registration/internal/logger"
	"github.com/aanand-mishra/course-registration/internal/registration"
	"github.com/aanand-mishra/course-registration/internal/storage"
	"github.com/aanand-mishra/course-registration/internal/storage/cache"
	"github.com/aanand-mishra/course-registration/internal/storage/remote"
	"github.com/aanand-mishra/course-registration/internal/storage/sqlite"
	"github.com/aanand-mishra/course-registration/internal/tui"
)

const version = "1.0.0"

func init() {
	// Query the terminal background before the program owns stdin, so the
	// reply does not end up in a text input.
	_ = lipgloss.HasDarkBackground()
}

type options struct {
	configPath string
	local      bool
	serverURL  string
	logFile    string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "registration-client",
		Short:        "Register for university courses from the terminal",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", os.Getenv("CONFIG_PATH"),
		"path to the configuration YAML file (default: $CONFIG_PATH)")
	cmd.Flags().BoolVar(&opts.local, "local", false,
		"use the SQLite database from storage_path instead of the server")
	cmd.Flags().StringVar(&opts.serverURL, "server", "",
		"registration server URL (overrides client.server_url)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "registration-client.log",
		"file the client logs to")

	return cmd
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.serverURL != "" {
		cfg.Client.ServerURL = opts.serverURL
	}

	// The screen belongs to the program, so logs go to a file.
	f, err := tea.LogToFile(opts.logFile, "registration-client")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	log := logger.New(cfg.Env, f)
	slog.SetDefault(log)

	store, closeStore, err := openStore(ctx, cfg, opts.local, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	display := tui.NewDisplay()
	validator := registration.NewValidator(registration.RulesFromConfig(cfg.Validation))
	coord := registration.New(display, store, validator, log)

	p := tea.NewProgram(tui.New(ctx, coord), tea.WithAltScreen(), tea.WithContext(ctx))
	display.Attach(p.Send)

	log.Info("starting registration-client",
		slog.String("env", cfg.Env),
		slog.Bool("local", opts.local))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openStore returns the data store the client registers against and a
// function releasing it.
func openStore(ctx context.Context, cfg *config.Config, local bool, log *slog.Logger) (storage.Storage, func() error, error) {
	if !local {
		log.Info("using registration server", slog.String("url", cfg.Client.ServerURL))
		return remote.New(cfg.Client.ServerURL, cfg.Client.Timeout), func() error { return nil }, nil
	}

	db, err := sqlite.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening local storage: %w", err)
	}

	seeded, err := db.Seed(ctx, sqlite.DefaultCatalog())
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("seeding local storage: %w", err)
	}
	log.Info("using local storage",
		slog.String("path", cfg.StoragePath),
		slog.Int("seeded_courses", seeded))

	var store storage.Storage = db
	if !cfg.Cache.Disabled {
		store = cache.New(db, cfg.Cache.TTL)
	}
	return store, db.Close, nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
