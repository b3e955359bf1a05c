package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// WeekRepository handles week database operations
type WeekRepository struct {
	db *Database
}

// Upsert inserts or returns the week row for (season, week number).
func (r *WeekRepository) Upsert(ctx context.Context, week *models.Week) error {
	query := `
		INSERT INTO weeks (season_year, week_number, picks_deadline)
		VALUES ($1, $2, $3)
		ON CONFLICT (season_year, week_number) DO UPDATE SET
			updated_at = NOW()
		RETURNING id, graded, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		week.SeasonYear, week.WeekNumber, week.PicksDeadline,
	).Scan(&week.ID, &week.Graded, &week.CreatedAt, &week.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert week: %w", err)
	}

	return nil
}

// GetByNumber retrieves a week by season and week number.
func (r *WeekRepository) GetByNumber(ctx context.Context, season, weekNumber int) (*models.Week, error) {
	query := `
		SELECT id, season_year, week_number, picks_deadline, graded, created_at, updated_at
		FROM weeks
		WHERE season_year = $1 AND week_number = $2
	`

	var week models.Week
	err := r.db.Pool.QueryRow(ctx, query, season, weekNumber).Scan(
		&week.ID, &week.SeasonYear, &week.WeekNumber, &week.PicksDeadline,
		&week.Graded, &week.CreatedAt, &week.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("week %d-W%d: %w", season, weekNumber, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get week: %w", err)
	}

	return &week, nil
}

// ActiveWeek returns the earliest week of the season that still has a
// game not yet final. When every week is settled it falls back to the
// latest week on record.
func (r *WeekRepository) ActiveWeek(ctx context.Context, season int) (*models.Week, error) {
	query := `
		SELECT w.id, w.season_year, w.week_number, w.picks_deadline, w.graded, w.created_at, w.updated_at
		FROM weeks w
		WHERE w.season_year = $1
		  AND EXISTS (
			SELECT 1 FROM games g WHERE g.week_id = w.id AND g.status <> 'final'
		  )
		ORDER BY w.week_number
		LIMIT 1
	`

	var week models.Week
	err := r.db.Pool.QueryRow(ctx, query, season).Scan(
		&week.ID, &week.SeasonYear, &week.WeekNumber, &week.PicksDeadline,
		&week.Graded, &week.CreatedAt, &week.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return r.latestWeek(ctx, season)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active week: %w", err)
	}

	return &week, nil
}

func (r *WeekRepository) latestWeek(ctx context.Context, season int) (*models.Week, error) {
	query := `
		SELECT id, season_year, week_number, picks_deadline, graded, created_at, updated_at
		FROM weeks
		WHERE season_year = $1
		ORDER BY week_number DESC
		LIMIT 1
	`

	var week models.Week
	err := r.db.Pool.QueryRow(ctx, query, season).Scan(
		&week.ID, &week.SeasonYear, &week.WeekNumber, &week.PicksDeadline,
		&week.Graded, &week.CreatedAt, &week.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("season %d has no weeks: %w", season, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest week: %w", err)
	}

	return &week, nil
}

// UpdateDeadline sets the picks deadline to the earliest kickoff among
// the week's games. A week without games keeps a NULL deadline.
func (r *WeekRepository) UpdateDeadline(ctx context.Context, weekID int64) error {
	query := `
		UPDATE weeks
		SET picks_deadline = (
			SELECT MIN(kickoff) FROM games WHERE week_id = $1
		),
		updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.Pool.Exec(ctx, query, weekID); err != nil {
		return fmt.Errorf("failed to update week deadline: %w", err)
	}

	return nil
}

// SetGraded marks or clears the week's graded flag. Clearing happens
// when a final score changes after grading and the week must be graded
// again.
func (r *WeekRepository) SetGraded(ctx context.Context, weekID int64, graded bool) error {
	query := `
		UPDATE weeks
		SET graded = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.Pool.Exec(ctx, query, graded, weekID)
	if err != nil {
		return fmt.Errorf("failed to set week graded flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("week %d: %w", weekID, ErrNotFound)
	}

	log.Debug().Int64("week_id", weekID).Bool("graded", graded).Msg("Week graded flag updated")
	return nil
}

// UngradedFinalWeeks returns weeks where every game is final but the
// graded flag is still unset, oldest first.
func (r *WeekRepository) UngradedFinalWeeks(ctx context.Context, season int) ([]*models.Week, error) {
	query := `
		SELECT w.id, w.season_year, w.week_number, w.picks_deadline, w.graded, w.created_at, w.updated_at
		FROM weeks w
		WHERE w.season_year = $1
		  AND w.graded = FALSE
		  AND EXISTS (SELECT 1 FROM games g WHERE g.week_id = w.id)
		  AND NOT EXISTS (
			SELECT 1 FROM games g WHERE g.week_id = w.id AND g.status <> 'final'
		  )
		ORDER BY w.week_number
	`

	rows, err := r.db.Pool.Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to get ungraded weeks: %w", err)
	}
	defer rows.Close()

	var weeks []*models.Week
	for rows.Next() {
		var week models.Week
		err := rows.Scan(
			&week.ID, &week.SeasonYear, &week.WeekNumber, &week.PicksDeadline,
			&week.Graded, &week.CreatedAt, &week.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		weeks = append(weeks, &week)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weeks: %w", err)
	}

	return weeks, nil
}

// Deadline returns the picks deadline for a week, or ErrNotFound when
// the week has no deadline set yet.
func (r *WeekRepository) Deadline(ctx context.Context, weekID int64) (time.Time, error) {
	query := `SELECT picks_deadline FROM weeks WHERE id = $1`

	var deadline *time.Time
	err := r.db.Pool.QueryRow(ctx, query, weekID).Scan(&deadline)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, fmt.Errorf("week %d: %w", weekID, ErrNotFound)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get week deadline: %w", err)
	}
	if deadline == nil {
		return time.Time{}, fmt.Errorf("week %d has no deadline: %w", weekID, ErrNotFound)
	}

	return deadline.UTC(), nil
}
