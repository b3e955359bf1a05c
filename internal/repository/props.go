package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/7777tbone7777/nfl-picks/internal/models"
)

// PropRepository handles prop bet and prop pick database operations
type PropRepository struct {
	db *Database
}

// Create inserts a new prop bet.
func (r *PropRepository) Create(ctx context.Context, prop *models.PropBet) error {
	query := `
		INSERT INTO prop_bets (week_id, game_label, description, option_a, option_b)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		prop.WeekID, prop.GameLabel, prop.Description, prop.OptionA, prop.OptionB,
	).Scan(&prop.ID, &prop.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create prop bet: %w", err)
	}

	return nil
}

// GetByID retrieves a prop bet by id.
func (r *PropRepository) GetByID(ctx context.Context, id int64) (*models.PropBet, error) {
	query := `
		SELECT id, week_id, game_label, description, option_a, option_b, result, created_at
		FROM prop_bets
		WHERE id = $1
	`

	var prop models.PropBet
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&prop.ID, &prop.WeekID, &prop.GameLabel, &prop.Description,
		&prop.OptionA, &prop.OptionB, &prop.Result, &prop.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("prop bet %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prop bet: %w", err)
	}

	return &prop, nil
}

// GetByWeek retrieves all prop bets for a week.
func (r *PropRepository) GetByWeek(ctx context.Context, weekID int64) ([]*models.PropBet, error) {
	query := `
		SELECT id, week_id, game_label, description, option_a, option_b, result, created_at
		FROM prop_bets
		WHERE week_id = $1
		ORDER BY id
	`

	rows, err := r.db.Pool.Query(ctx, query, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prop bets: %w", err)
	}
	defer rows.Close()

	var props []*models.PropBet
	for rows.Next() {
		var prop models.PropBet
		err := rows.Scan(&prop.ID, &prop.WeekID, &prop.GameLabel, &prop.Description,
			&prop.OptionA, &prop.OptionB, &prop.Result, &prop.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prop bet: %w", err)
		}
		props = append(props, &prop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prop bets: %w", err)
	}

	return props, nil
}

// SetResult declares the result of a prop bet.
func (r *PropRepository) SetResult(ctx context.Context, propID int64, result string) error {
	query := `UPDATE prop_bets SET result = $1 WHERE id = $2`

	res, err := r.db.Pool.Exec(ctx, query, result, propID)
	if err != nil {
		return fmt.Errorf("failed to set prop result: %w", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("prop bet %d: %w", propID, ErrNotFound)
	}

	return nil
}

// BulkSetResults declares results for several props at once. Partial
// declarations are fine: props absent from the map are untouched. Each
// update is independent; a missing prop id is skipped, not an error.
func (r *PropRepository) BulkSetResults(ctx context.Context, results map[int64]string) (updated int, err error) {
	for propID, result := range results {
		res, err := r.db.Pool.Exec(ctx,
			`UPDATE prop_bets SET result = $1 WHERE id = $2`, result, propID)
		if err != nil {
			return updated, fmt.Errorf("failed to set result for prop %d: %w", propID, err)
		}
		updated += int(res.RowsAffected())
	}

	return updated, nil
}

// InsertPick submits a prop pick. The unique constraint on
// (participant, prop) makes a duplicate submission a no-op.
func (r *PropRepository) InsertPick(ctx context.Context, pick *models.PropPick) (inserted bool, err error) {
	query := `
		INSERT INTO prop_picks (participant_id, prop_bet_id, selection)
		VALUES ($1, $2, $3)
		ON CONFLICT (participant_id, prop_bet_id) DO NOTHING
		RETURNING id, created_at
	`

	err = r.db.Pool.QueryRow(ctx, query,
		pick.ParticipantID, pick.PropBetID, pick.Selection,
	).Scan(&pick.ID, &pick.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to submit prop pick: %w", err)
	}

	return true, nil
}

// GetPicksByWeek retrieves all prop picks on a week's props.
func (r *PropRepository) GetPicksByWeek(ctx context.Context, weekID int64) ([]*models.PropPick, error) {
	query := `
		SELECT pp.id, pp.participant_id, pp.prop_bet_id, pp.selection, pp.created_at
		FROM prop_picks pp
		JOIN prop_bets pb ON pb.id = pp.prop_bet_id
		WHERE pb.week_id = $1
		ORDER BY pp.id
	`

	rows, err := r.db.Pool.Query(ctx, query, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prop picks: %w", err)
	}
	defer rows.Close()

	var picks []*models.PropPick
	for rows.Next() {
		var pick models.PropPick
		err := rows.Scan(&pick.ID, &pick.ParticipantID, &pick.PropBetID, &pick.Selection, &pick.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prop pick: %w", err)
		}
		picks = append(picks, &pick)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prop picks: %w", err)
	}

	return picks, nil
}
