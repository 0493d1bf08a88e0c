package main

import (
	"fmt"
	"log/slog"

	"github.com/arnold/compass/internal/config"
	"github.com/arnold/compass/internal/database"
	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/repository"
	"github.com/arnold/compass/internal/services"
	"github.com/arnold/compass/internal/storage"
	"github.com/spf13/cobra"
)

// app is everything a command needs, opened from the configuration.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *storage.Store
	repos   *repository.Repositories
	journal *services.Journal
	backup  *services.Backup
	closers []func() error
}

func openApp(cmd *cobra.Command, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger}
	backend, err := a.openBackend()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = storage.NewStore(backend, logger)
	a.closers = append(a.closers, a.store.Close)

	out := cmd.OutOrStdout()
	a.repos = repository.New(a.store, repository.WithLogger(logger))
	a.journal = services.NewJournal(a.repos, logger,
		services.WithReminders(services.NewReminders(services.NewLogScheduler(logger), logger)),
		services.WithCalendar(services.NewNoopCalendar(logger)),
		services.WithUnlockHandler(func(ach models.Achievement) {
			fmt.Fprintf(out, "Achievement unlocked: %s (%s)\n", ach.Title, ach.Description)
		}),
	)
	a.backup = services.NewBackup(a.store, logger)
	return a, nil
}

func (a *app) openBackend() (storage.Backend, error) {
	switch a.cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryBackend(), nil
	case config.StoreBadger:
		bcfg := database.DefaultBadgerConfig(a.cfg.BadgerPath)
		bcfg.Logger = a.logger
		db, err := database.OpenBadger(bcfg)
		if err != nil {
			return nil, err
		}
		return storage.NewBadgerBackend(db), nil
	default:
		db, err := database.Connect(a.cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return database.Close(db) })
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return storage.NewGormBackend(db), nil
	}
}

// Close releases resources in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", slog.String("error", err.Error()))
		}
	}
	a.closers = nil
}
