// Command importprops manages proposition bets for a week from CSV
// files. The default mode creates props, one per line:
//
//	game_label,description,option_a,option_b
//
// Example: "KC @ SF,Total points over 47.5,OVER,UNDER".
//
// With -results the file declares results instead, one per line:
//
//	prop_id,result
//
// Declared results feed prop grading; props absent from the file keep
// whatever result they had.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/config"
	"github.com/7777tbone7777/nfl-picks/internal/models"
	"github.com/7777tbone7777/nfl-picks/internal/repository"
)

func main() {
	var (
		path    = flag.String("file", "", "path to the props CSV file")
		season  = flag.Int("season", 0, "season year")
		week    = flag.Int("week", 0, "internal week number (1-23)")
		results = flag.Bool("results", false, "declare results (prop_id,result lines) instead of creating props")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if *path == "" || (!*results && (*season == 0 || *week == 0)) {
		fmt.Fprintln(os.Stderr, "usage: importprops -file props.csv -season 2025 -week 23")
		fmt.Fprintln(os.Stderr, "       importprops -file results.csv -results")
		os.Exit(2)
	}

	cfg := config.MustLoad()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

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

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("Failed to open props file")
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse props file")
	}

	if *results {
		declareResults(ctx, db, records)
		return
	}

	createProps(ctx, db, records, *season, *week)
}

func createProps(ctx context.Context, db *repository.Database, records [][]string, season, week int) {
	weekRow, err := db.Weeks.GetByNumber(ctx, season, week)
	if err != nil {
		log.Fatal().Err(err).Int("season", season).Int("week", week).Msg("Week not found; import its schedule first")
	}

	props, skipped := propsFromRecords(weekRow.ID, records)
	for _, prop := range props {
		if err := db.Props.Create(ctx, prop); err != nil {
			log.Fatal().Err(err).Str("description", prop.Description).Msg("Failed to create prop bet")
		}
	}

	log.Info().
		Int("created", len(props)).
		Int("skipped", skipped).
		Int("season", season).
		Int("week", week).
		Msg("Props imported")
}

func declareResults(ctx context.Context, db *repository.Database, records [][]string) {
	results, skipped := resultsFromRecords(records)
	if len(results) == 0 {
		log.Fatal().Int("skipped", skipped).Msg("No valid result lines in file")
	}

	updated, err := db.Props.BulkSetResults(ctx, results)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to declare prop results")
	}

	log.Info().
		Int("declared", updated).
		Int("skipped", skipped).
		Msg("Prop results declared")
}

// propsFromRecords builds prop rows from CSV records, dropping malformed
// lines.
func propsFromRecords(weekID int64, records [][]string) (props []*models.PropBet, skipped int) {
	for i, rec := range records {
		if len(rec) != 4 {
			log.Warn().Int("line", i+1).Int("fields", len(rec)).Msg("Skipping malformed props line")
			skipped++
			continue
		}

		prop := &models.PropBet{
			WeekID:      weekID,
			GameLabel:   strings.TrimSpace(rec[0]),
			Description: strings.TrimSpace(rec[1]),
			OptionA:     strings.TrimSpace(rec[2]),
			OptionB:     strings.TrimSpace(rec[3]),
		}
		if prop.Description == "" || prop.OptionA == "" || prop.OptionB == "" {
			log.Warn().Int("line", i+1).Msg("Skipping props line with empty fields")
			skipped++
			continue
		}
		props = append(props, prop)
	}
	return props, skipped
}

// resultsFromRecords builds the prop id to result mapping from CSV
// records, dropping malformed lines. A later line for the same prop id
// wins.
func resultsFromRecords(records [][]string) (results map[int64]string, skipped int) {
	results = make(map[int64]string, len(records))
	for i, rec := range records {
		if len(rec) != 2 {
			log.Warn().Int("line", i+1).Int("fields", len(rec)).Msg("Skipping malformed results line")
			skipped++
			continue
		}

		propID, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
		if err != nil {
			log.Warn().Int("line", i+1).Str("prop_id", rec[0]).Msg("Skipping results line with bad prop id")
			skipped++
			continue
		}
		result := strings.TrimSpace(rec[1])
		if result == "" {
			log.Warn().Int("line", i+1).Msg("Skipping results line with empty result")
			skipped++
			continue
		}
		results[propID] = result
	}
	return results, skipped
}
