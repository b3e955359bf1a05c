package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/models"
)

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

// Upsert inserts or updates a game keyed by external_id, reporting
// whether anything was written: a re-import of identical data touches no
// rows. Odds and score columns use COALESCE so a schedule refresh that
// carries neither never clobbers what the odds and score jobs wrote.
func (r *GameRepository) Upsert(ctx context.Context, game *models.Game) (changed bool, err error) {
	query := `
		INSERT INTO games (
			week_id, external_id, home_team, away_team,
			home_unresolved, away_unresolved, kickoff, status,
			favorite_team, spread_pts, home_score, away_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (external_id) DO UPDATE SET
			week_id = EXCLUDED.week_id,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			home_unresolved = EXCLUDED.home_unresolved,
			away_unresolved = EXCLUDED.away_unresolved,
			kickoff = EXCLUDED.kickoff,
			status = EXCLUDED.status,
			favorite_team = COALESCE(EXCLUDED.favorite_team, games.favorite_team),
			spread_pts = COALESCE(EXCLUDED.spread_pts, games.spread_pts),
			home_score = COALESCE(EXCLUDED.home_score, games.home_score),
			away_score = COALESCE(EXCLUDED.away_score, games.away_score),
			updated_at = NOW()
		WHERE (games.week_id, games.home_team, games.away_team,
			games.home_unresolved, games.away_unresolved,
			games.kickoff, games.status,
			games.favorite_team, games.spread_pts,
			games.home_score, games.away_score)
		IS DISTINCT FROM
			(EXCLUDED.week_id, EXCLUDED.home_team, EXCLUDED.away_team,
			EXCLUDED.home_unresolved, EXCLUDED.away_unresolved,
			EXCLUDED.kickoff, EXCLUDED.status,
			COALESCE(EXCLUDED.favorite_team, games.favorite_team),
			COALESCE(EXCLUDED.spread_pts, games.spread_pts),
			COALESCE(EXCLUDED.home_score, games.home_score),
			COALESCE(EXCLUDED.away_score, games.away_score))
	`

	result, err := r.db.Pool.Exec(ctx, query,
		game.WeekID, game.ExternalID, game.HomeTeam, game.AwayTeam,
		game.HomeUnresolved, game.AwayUnresolved, game.Kickoff, game.Status,
		game.FavoriteTeam, game.SpreadPts, game.HomeScore, game.AwayScore,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert game: %w", err)
	}

	changed = result.RowsAffected() > 0
	if changed {
		log.Debug().
			Str("external_id", game.ExternalID).
			Str("home", game.HomeTeam).
			Str("away", game.AwayTeam).
			Msg("Game upserted")
	}

	return changed, nil
}

// ApplyScore writes a score update for a game. The write is guarded by
// IS DISTINCT FROM so an identical snapshot touches no rows; the caller
// learns through changed whether anything actually moved.
func (r *GameRepository) ApplyScore(ctx context.Context, externalID string, homeScore, awayScore int, status string) (changed bool, err error) {
	query := `
		UPDATE games
		SET home_score = $1, away_score = $2, status = $3, updated_at = NOW()
		WHERE external_id = $4
		  AND (home_score IS DISTINCT FROM $1
			OR away_score IS DISTINCT FROM $2
			OR status IS DISTINCT FROM $3)
	`

	result, err := r.db.Pool.Exec(ctx, query, homeScore, awayScore, status, externalID)
	if err != nil {
		return false, fmt.Errorf("failed to apply score: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ApplyOdds writes the favorite and spread for a game, again skipping
// the write when nothing changed.
func (r *GameRepository) ApplyOdds(ctx context.Context, externalID, favorite string, spreadPts float64) (changed bool, err error) {
	query := `
		UPDATE games
		SET favorite_team = $1, spread_pts = $2, updated_at = NOW()
		WHERE external_id = $3
		  AND (favorite_team IS DISTINCT FROM $1
			OR spread_pts IS DISTINCT FROM $2)
	`

	result, err := r.db.Pool.Exec(ctx, query, favorite, spreadPts, externalID)
	if err != nil {
		return false, fmt.Errorf("failed to apply odds: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

const gameColumns = `
	id, week_id, external_id, home_team, away_team,
	home_unresolved, away_unresolved, kickoff, status,
	favorite_team, spread_pts, home_score, away_score,
	created_at, updated_at
`

func scanGame(row pgx.Row) (*models.Game, error) {
	var game models.Game
	err := row.Scan(
		&game.ID, &game.WeekID, &game.ExternalID, &game.HomeTeam, &game.AwayTeam,
		&game.HomeUnresolved, &game.AwayUnresolved, &game.Kickoff, &game.Status,
		&game.FavoriteTeam, &game.SpreadPts, &game.HomeScore, &game.AwayScore,
		&game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	game.Kickoff = game.Kickoff.UTC()
	return &game, nil
}

// GetByID retrieves a game by its database ID.
func (r *GameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGame(r.db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetByExternalID retrieves a game by its provider event id.
func (r *GameRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE external_id = $1`

	game, err := scanGame(r.db.Pool.QueryRow(ctx, query, externalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", externalID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetByWeek retrieves all games for a week, ordered by kickoff.
func (r *GameRepository) GetByWeek(ctx context.Context, weekID int64) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE week_id = $1 ORDER BY kickoff, id`

	rows, err := r.db.Pool.Query(ctx, query, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get games by week: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// Count returns the total number of games
func (r *GameRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM games`

	var count int
	err := r.db.Pool.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}

	return count, nil
}
