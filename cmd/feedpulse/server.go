package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/feedpulse/feedpulse/internal/duckdb"
	"github.com/feedpulse/feedpulse/internal/fetch"
	"github.com/feedpulse/feedpulse/internal/httpserver"
	"github.com/feedpulse/feedpulse/internal/logging"
	"github.com/feedpulse/feedpulse/internal/poll"
)

// runServer starts the headless poller with the HTTP API.
func runServer(cfg appConfig) error {
	log := logging.New()
	defer log.Sync()

	store, err := duckdb.NewStore(cfg.DBPath, cfg.QueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize DuckDB: %w", err)
	}
	defer store.Close()

	retentionCleaner := duckdb.NewRetentionCleaner(store, duckdb.RetentionConfig{
		RetentionDays: cfg.RetentionDays,
	})
	if retentionCleaner != nil {
		defer retentionCleaner.Stop()
	}

	client := fetch.New(cfg.APIBaseURL)
	poller := poll.New(client, store, poll.Config{
		Interval:    cfg.PollInterval,
		HistoryDays: cfg.HistoryDays,
	}, log)

	if cfg.APIEnabled {
		apiServer := httpserver.NewServer(cfg.APIAddr, store, cfg.thresholds(), cfg.HistoryDays)
		if err := apiServer.Start(); err != nil {
			return fmt.Errorf("failed to start API server: %w", err)
		}
		defer apiServer.Stop()
		log.Infow("api server started", "addr", cfg.APIAddr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return poller.Run(ctx)
	})
	g.Go(func() error {
		select {
		case <-sigCh:
			log.Infow("shutting down")
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	log.Infow("feedpulse started",
		"upstream", cfg.APIBaseURL,
		"poll_interval", cfg.PollInterval,
		"db_path", cfg.DBPath)

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
