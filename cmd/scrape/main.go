package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdeebK1129/GymCrowd-backend/internal/config"
	persistence "github.com/AdeebK1129/GymCrowd-backend/internal/persistence/postgres"
	"github.com/AdeebK1129/GymCrowd-backend/internal/scraper"
)

// Runs a single scrape cycle and exits. Useful for cron-style scheduling
// instead of the in-process driver loop.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	if len(cfg.CrowdSourceURLs) == 0 {
		logger.Error("no crowd data sources configured")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := persistence.EnsureSchema(ctx, pool); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.ScrapeTimezone)
	if err != nil {
		logger.Warn("invalid scrape timezone, falling back to UTC", "timezone", cfg.ScrapeTimezone)
		loc = time.UTC
	}

	gymRepo := persistence.NewGymRepository(pool)
	snapshotRepo := persistence.NewSnapshotRepository(pool)

	fetcher := scraper.NewFetcher(scraper.FetcherConfig{
		Sources:   cfg.CrowdSourceURLs,
		UserAgent: cfg.ScrapeUserAgent,
		Timeout:   cfg.ScrapeFetchTimeout,
		Location:  loc,
	}, logger)
	reconciler := scraper.NewReconciler(gymRepo, snapshotRepo, logger)
	driver := scraper.NewDriver(fetcher, reconciler, cfg.ScrapeInterval, logger)

	stats := driver.RunCycle(ctx)
	if stats.Inserted == 0 && (stats.FetchErrors > 0 || stats.InsertFailed > 0) {
		os.Exit(1)
	}
}
