package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	linesections "github.com/theoremus-urban-solutions/line-sections"
	"github.com/theoremus-urban-solutions/line-sections/config"
	"github.com/theoremus-urban-solutions/line-sections/line"
	"github.com/theoremus-urban-solutions/line-sections/store"
)

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "line-sections",
		Short:        "Manage transit lines as chains of station-to-station sections",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.yml (default: ./config.yml, ./config/config.yml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log at debug level")

	cmd.AddCommand(
		serveCmd(opts),
		importCmd(opts),
		stationsCmd(opts),
		vehiclesCmd(opts),
	)
	return cmd
}

// app holds what every subcommand needs.
type app struct {
	cfg    config.AppConfig
	log    *slog.Logger
	db     *store.Badger
	svc    *line.Service
	closer func()
}

func (o *rootOptions) open() (*app, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if o.debug {
		cfg.Logging.Level = "debug"
	}
	logger := linesections.InitLogging(cfg.Logging, os.Stderr)

	db, err := store.Open(store.Options{Path: cfg.Storage.Path, InMemory: cfg.Storage.InMemory})
	if err != nil {
		return nil, err
	}
	if cfg.Storage.InMemory {
		logger.Warn("storage is in-memory; lines are lost on exit")
	}
	svc := line.NewService(db, line.Options{CacheSize: cfg.Cache.Size, Logger: logger})
	return &app{
		cfg: cfg,
		log: logger,
		db:  db,
		svc: svc,
		closer: func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close store", "error", err)
			}
		},
	}, nil
}

func (o *rootOptions) loadConfig() (config.AppConfig, error) {
	if o.configPath != "" {
		return config.LoadAppConfig(o.configPath)
	}
	cfg, err := config.LoadAppConfig()
	if errors.Is(err, config.ErrNoConfig) {
		return config.Default(), nil
	}
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
