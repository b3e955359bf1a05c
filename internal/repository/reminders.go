package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ReminderRepository handles reminder ledger operations
type ReminderRepository struct {
	db *Database
}

// Claim records that a reminder of kind is being sent to a participant
// about ref. The unique constraint makes the claim exactly-once: the
// first caller gets claimed=true and sends, every other caller
// (including a crashed-and-restarted job) gets false and stays quiet.
func (r *ReminderRepository) Claim(ctx context.Context, kind string, participantID, refID int64) (claimed bool, err error) {
	query := `
		INSERT INTO reminders (kind, participant_id, ref_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind, participant_id, ref_id) DO NOTHING
		RETURNING id
	`

	var id int64
	err = r.db.Pool.QueryRow(ctx, query, kind, participantID, refID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to claim reminder: %w", err)
	}

	return true, nil
}

// Sent reports whether a reminder was already claimed.
func (r *ReminderRepository) Sent(ctx context.Context, kind string, participantID, refID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reminders
			WHERE kind = $1 AND participant_id = $2 AND ref_id = $3
		)
	`

	var sent bool
	if err := r.db.Pool.QueryRow(ctx, query, kind, participantID, refID).Scan(&sent); err != nil {
		return false, fmt.Errorf("failed to check reminder: %w", err)
	}

	return sent, nil
}
