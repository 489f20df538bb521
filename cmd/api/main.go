package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AdeebK1129/GymCrowd-backend/internal/api"
	"github.com/AdeebK1129/GymCrowd-backend/internal/auth"
	"github.com/AdeebK1129/GymCrowd-backend/internal/config"
	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
	persistence "github.com/AdeebK1129/GymCrowd-backend/internal/persistence/postgres"
	"github.com/AdeebK1129/GymCrowd-backend/internal/scraper"
	httptransport "github.com/AdeebK1129/GymCrowd-backend/internal/transport/http"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
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

	userRepo := persistence.NewUserRepository(pool)
	tokenRepo := persistence.NewTokenRepository(pool)
	preferenceRepo := persistence.NewPreferenceRepository(pool)
	gymRepo := persistence.NewGymRepository(pool)
	snapshotRepo := persistence.NewSnapshotRepository(pool)
	exerciseRepo := persistence.NewExerciseRepository(pool)
	workoutRepo := persistence.NewWorkoutRepository(pool)
	notificationRepo := persistence.NewNotificationRepository(pool)

	userService := domain.NewUserService(userRepo, tokenRepo, preferenceRepo, gymRepo)
	gymService := domain.NewGymService(gymRepo, snapshotRepo)
	workoutService := domain.NewWorkoutService(workoutRepo, exerciseRepo)
	notificationService := domain.NewNotificationService(notificationRepo, userRepo, gymRepo)

	var driver *scraper.Driver
	if cfg.ScrapeEnabled && len(cfg.CrowdSourceURLs) > 0 {
		driver = scraper.NewDriver(
			scraper.NewFetcher(fetcherConfig(cfg, logger), logger),
			scraper.NewReconciler(gymRepo, snapshotRepo, logger),
			cfg.ScrapeInterval,
			logger,
		)
		go driver.Start(ctx)
	} else {
		logger.Info("scrape driver disabled", "enabled", cfg.ScrapeEnabled, "sources", len(cfg.CrowdSourceURLs))
	}

	handler := api.NewHandler(userService, gymService, workoutService, notificationService, logger)
	authMiddleware := auth.NewMiddleware(userService)

	router := handler.Router(authMiddleware)
	router.Handle("/metrics", promhttp.Handler())

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, router)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("gymcrowd backend listening", "address", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	if driver != nil {
		driver.Wait()
	}
}

func fetcherConfig(cfg config.Config, logger *slog.Logger) scraper.FetcherConfig {
	loc, err := time.LoadLocation(cfg.ScrapeTimezone)
	if err != nil {
		logger.Warn("invalid scrape timezone, falling back to UTC", "timezone", cfg.ScrapeTimezone)
		loc = time.UTC
	}
	return scraper.FetcherConfig{
		Sources:   cfg.CrowdSourceURLs,
		UserAgent: cfg.ScrapeUserAgent,
		Timeout:   cfg.ScrapeFetchTimeout,
		Location:  loc,
	}
}
