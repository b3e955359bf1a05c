package models

import (
	"database/sql"
	"time"
)

// Pick is a participant's selected team for one game. At most one exists
// per (participant, game); after kickoff a new one can only be created by
// administrative override.
type Pick struct {
	ID            int64          `db:"id"`
	ParticipantID int64          `db:"participant_id"`
	GameID        int64          `db:"game_id"`
	SelectedTeam  string         `db:"selected_team"`
	Outcome       sql.NullString `db:"outcome"` // set once the game is graded
	CreatedAt     time.Time      `db:"created_at"`
}
