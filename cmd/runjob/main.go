// Command runjob runs one sync job by name and exits. It exists for
// operators: re-running a failed import, forcing an odds import with the
// any-day override, or grading a week by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/clock"
	"github.com/7777tbone7777/nfl-picks/internal/config"
	"github.com/7777tbone7777/nfl-picks/internal/jobs"
	"github.com/7777tbone7777/nfl-picks/internal/notify"
	"github.com/7777tbone7777/nfl-picks/internal/provider"
	"github.com/7777tbone7777/nfl-picks/internal/repository"
)

func main() {
	var (
		jobName = flag.String("job", "", "job to run: "+strings.Join(jobs.Names(), ", "))
		timeout = flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if *jobName == "" {
		fmt.Fprintf(os.Stderr, "usage: runjob -job <name>\n  jobs: %s\n", strings.Join(jobs.Names(), ", "))
		os.Exit(2)
	}

	cfg := config.MustLoad()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

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

	client := provider.NewClient(
		cfg.ProviderBaseURL,
		cfg.ProviderTimeout,
		cfg.ProviderRetries,
		cfg.ProviderBackoff,
	)

	notifier := notify.NewTelegram(cfg.TelegramBotToken, cfg.AdminChatIDs)
	runner := jobs.NewRunner(cfg, clk, client, jobs.StoresFromDB(db), notifier)

	result := runner.Run(ctx, *jobName)
	if result.Status == jobs.StatusFailed {
		os.Exit(1)
	}
}
