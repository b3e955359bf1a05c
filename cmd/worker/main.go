package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/cache"
	"github.com/7777tbone7777/nfl-picks/internal/clock"
	"github.com/7777tbone7777/nfl-picks/internal/config"
	"github.com/7777tbone7777/nfl-picks/internal/jobs"
	"github.com/7777tbone7777/nfl-picks/internal/metrics"
	"github.com/7777tbone7777/nfl-picks/internal/notify"
	"github.com/7777tbone7777/nfl-picks/internal/provider"
	"github.com/7777tbone7777/nfl-picks/internal/repository"
	"github.com/7777tbone7777/nfl-picks/internal/scheduler"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting NFL Picks Sync Worker")

	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Bool("offseason", cfg.Offseason).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	clk, err := clock.New(cfg.AppTimezone, cfg.LegacyTimezone)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize clock")
	}

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap database schema")
	}

	var providerOpts []provider.Option
	snapshotCache, err := cache.New(ctx, cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
	} else {
		defer snapshotCache.Close()
		providerOpts = append(providerOpts, provider.WithCache(snapshotCache))
	}

	client := provider.NewClient(
		cfg.ProviderBaseURL,
		cfg.ProviderTimeout,
		cfg.ProviderRetries,
		cfg.ProviderBackoff,
		providerOpts...,
	)
	log.Info().Str("base_url", cfg.ProviderBaseURL).Msg("Provider client initialized")

	notifier := notify.NewTelegram(cfg.TelegramBotToken, cfg.AdminChatIDs)

	runner := jobs.NewRunner(cfg, clk, client, jobs.StoresFromDB(db), notifier)

	if cfg.EnableMetrics {
		go startMetricsServer(cfg.MetricsPort, db)
	}

	// Feed pool stats into the metrics.
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				stat := db.Pool.Stat()
				metrics.UpdateDBConnectionStats(stat.AcquiredConns(), stat.IdleConns())
			case <-ctx.Done():
				return
			}
		}
	}()

	sched := scheduler.NewScheduler(cfg, runner)
	if cfg.EnableScheduler {
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	<-ctx.Done()

	log.Info().Msg("Shutting down scheduler...")
	sched.Stop()

	log.Info().Msg("Worker shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port int, db *repository.Database) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info().Int("port", port).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
