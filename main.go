package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"bikeshare-explorer/config"
	"bikeshare-explorer/services"
	"bikeshare-explorer/session"
	"bikeshare-explorer/storage"
	"bikeshare-explorer/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerTo(os.Stderr, utils.ParseLevel(cfg.LogLevel))

	if err := run(context.Background(), cfg, os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// run wires the configured trip source into an interactive session.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger *utils.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Info("=== Bikeshare explorer starting ===")
	logger.Info("Config: data dir %s | source %s | page size %d", cfg.DataDir, cfg.Source, cfg.PageSize)

	catalog := storage.DefaultCatalog()
	if cfg.CityCatalog != "" {
		c, err := storage.LoadCatalog(cfg.CityCatalog)
		if err != nil {
			return err
		}
		catalog = c
	}

	var source storage.TripSource = storage.NewCSVSource(cfg.DataDir, catalog, logger)

	if cfg.Source == config.SourcePostgres {
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		}
		pg, err := storage.NewPostgresStore(ctx, cfg.DSN(), retry, logger)
		if err != nil {
			return fmt.Errorf("connect to PostgreSQL: %w", err)
		}
		defer pg.Close()
		source = storage.NewSeedingSource(pg, source, logger)
	}

	stats := services.NewStatisticsService(logger)
	sess := session.New(in, out, storage.NewCachedSource(source), stats, logger, cfg.PageSize)
	return sess.Run(ctx)
}
