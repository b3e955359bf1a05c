package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/7777tbone7777/nfl-picks/internal/models"
)

// ParticipantRepository handles participant database operations
type ParticipantRepository struct {
	db *Database
}

// Upsert inserts a participant keyed by chat id, updating the display
// name when it changed.
func (r *ParticipantRepository) Upsert(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (chat_id, name)
		VALUES ($1, $2)
		ON CONFLICT (chat_id) DO UPDATE SET
			name = EXCLUDED.name
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query, p.ChatID, p.Name).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert participant: %w", err)
	}

	return nil
}

// GetByChatID retrieves a participant by chat id.
func (r *ParticipantRepository) GetByChatID(ctx context.Context, chatID int64) (*models.Participant, error) {
	query := `SELECT id, chat_id, name, created_at FROM participants WHERE chat_id = $1`

	var p models.Participant
	err := r.db.Pool.QueryRow(ctx, query, chatID).Scan(&p.ID, &p.ChatID, &p.Name, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("participant chat_id=%d: %w", chatID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return &p, nil
}

// List retrieves every participant, ordered by id.
func (r *ParticipantRepository) List(ctx context.Context) ([]*models.Participant, error) {
	query := `SELECT id, chat_id, name, created_at FROM participants ORDER BY id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.ChatID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	return participants, nil
}

// ScoreboardRow is one participant's season standing.
type ScoreboardRow struct {
	ParticipantID int64
	Name          string
	Wins          int
	Losses        int
	Pushes        int
}

// SeasonScoreboard aggregates graded pick outcomes across a season.
// Ordering is wins descending, then participant id ascending, so equal
// records always render in a stable order.
func (r *ParticipantRepository) SeasonScoreboard(ctx context.Context, season int) ([]ScoreboardRow, error) {
	query := `
		SELECT p.id, p.name,
			COUNT(*) FILTER (WHERE pk.outcome = 'WIN')  AS wins,
			COUNT(*) FILTER (WHERE pk.outcome = 'LOSS') AS losses,
			COUNT(*) FILTER (WHERE pk.outcome = 'PUSH') AS pushes
		FROM participants p
		JOIN picks pk ON pk.participant_id = p.id
		JOIN games g ON g.id = pk.game_id
		JOIN weeks w ON w.id = g.week_id
		WHERE w.season_year = $1
		  AND pk.outcome IS NOT NULL
		GROUP BY p.id, p.name
		ORDER BY wins DESC, p.id
	`

	rows, err := r.db.Pool.Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to get season scoreboard: %w", err)
	}
	defer rows.Close()

	var board []ScoreboardRow
	for rows.Next() {
		var row ScoreboardRow
		if err := rows.Scan(&row.ParticipantID, &row.Name, &row.Wins, &row.Losses, &row.Pushes); err != nil {
			return nil, fmt.Errorf("failed to scan scoreboard row: %w", err)
		}
		board = append(board, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scoreboard: %w", err)
	}

	return board, nil
}
