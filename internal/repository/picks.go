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

// PickRepository handles pick database operations
type PickRepository struct {
	db *Database
}

// SubmitResult classifies the outcome of a pick submission.
type SubmitResult string

const (
	SubmitAccepted       SubmitResult = "accepted"
	SubmitDeadlinePassed SubmitResult = "deadline_passed"
	SubmitDuplicate      SubmitResult = "duplicate"
	SubmitUnknownGame    SubmitResult = "unknown_game"
)

// InsertIfOpen submits a pick with a single conditional insert: the row
// lands only when the game exists and has not kicked off as of now. The
// deadline check and the write are one statement, so two racing
// submissions or a submission racing the kickoff cannot interleave. A
// zero-row result is then classified by reading the game.
func (r *PickRepository) InsertIfOpen(ctx context.Context, participantID, gameID int64, selectedTeam string, now time.Time) (SubmitResult, error) {
	query := `
		INSERT INTO picks (participant_id, game_id, selected_team)
		SELECT $1, g.id, $2
		FROM games g
		WHERE g.id = $3 AND g.kickoff > $4
		ON CONFLICT (participant_id, game_id) DO NOTHING
	`

	result, err := r.db.Pool.Exec(ctx, query, participantID, selectedTeam, gameID, now)
	if err != nil {
		return "", fmt.Errorf("failed to submit pick: %w", err)
	}

	if result.RowsAffected() > 0 {
		log.Debug().
			Int64("participant_id", participantID).
			Int64("game_id", gameID).
			Str("team", selectedTeam).
			Msg("Pick accepted")
		return SubmitAccepted, nil
	}

	// No row written: work out which guard rejected it.
	var kickoff time.Time
	err = r.db.Pool.QueryRow(ctx, `SELECT kickoff FROM games WHERE id = $1`, gameID).Scan(&kickoff)
	if errors.Is(err, pgx.ErrNoRows) {
		return SubmitUnknownGame, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to classify pick rejection: %w", err)
	}

	if !now.Before(kickoff) {
		return SubmitDeadlinePassed, nil
	}
	return SubmitDuplicate, nil
}

// GetForParticipantGame retrieves one participant's pick on one game.
func (r *PickRepository) GetForParticipantGame(ctx context.Context, participantID, gameID int64) (*models.Pick, error) {
	query := `
		SELECT id, participant_id, game_id, selected_team, outcome, created_at
		FROM picks
		WHERE participant_id = $1 AND game_id = $2
	`

	var pick models.Pick
	err := r.db.Pool.QueryRow(ctx, query, participantID, gameID).Scan(
		&pick.ID, &pick.ParticipantID, &pick.GameID, &pick.SelectedTeam, &pick.Outcome, &pick.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("pick participant=%d game=%d: %w", participantID, gameID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pick: %w", err)
	}

	return &pick, nil
}

// GetByWeek retrieves every pick on a week's games.
func (r *PickRepository) GetByWeek(ctx context.Context, weekID int64) ([]*models.Pick, error) {
	query := `
		SELECT pk.id, pk.participant_id, pk.game_id, pk.selected_team, pk.outcome, pk.created_at
		FROM picks pk
		JOIN games g ON g.id = pk.game_id
		WHERE g.week_id = $1
		ORDER BY pk.id
	`

	rows, err := r.db.Pool.Query(ctx, query, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get picks by week: %w", err)
	}
	defer rows.Close()

	var picks []*models.Pick
	for rows.Next() {
		var pick models.Pick
		err := rows.Scan(&pick.ID, &pick.ParticipantID, &pick.GameID, &pick.SelectedTeam, &pick.Outcome, &pick.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		picks = append(picks, &pick)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating picks: %w", err)
	}

	return picks, nil
}

// SetOutcome records a graded outcome on a pick.
func (r *PickRepository) SetOutcome(ctx context.Context, pickID int64, outcome models.PickOutcome) error {
	query := `UPDATE picks SET outcome = $1 WHERE id = $2`

	result, err := r.db.Pool.Exec(ctx, query, string(outcome), pickID)
	if err != nil {
		return fmt.Errorf("failed to set pick outcome: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("pick %d: %w", pickID, ErrNotFound)
	}

	return nil
}

// ClearOutcomesForGame wipes graded outcomes on one game's picks, used
// when a final score is corrected after grading.
func (r *PickRepository) ClearOutcomesForGame(ctx context.Context, gameID int64) error {
	query := `UPDATE picks SET outcome = NULL WHERE game_id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, gameID); err != nil {
		return fmt.Errorf("failed to clear pick outcomes: %w", err)
	}

	return nil
}
