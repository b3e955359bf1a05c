package models

import (
	"database/sql"
	"time"
)

// PropBet is a proposition tied to a week with a binary outcome domain,
// e.g. OVER/UNDER or YES/NO. Result stays absent until graded.
type PropBet struct {
	ID          int64          `db:"id"`
	WeekID      int64          `db:"week_id"`
	GameLabel   string         `db:"game_label"` // e.g. "AFC", "NFC", "SB"
	Description string         `db:"description"`
	OptionA     string         `db:"option_a"`
	OptionB     string         `db:"option_b"`
	Result      sql.NullString `db:"result"`
	CreatedAt   time.Time      `db:"created_at"`
}

// Graded reports whether a result has been declared.
func (p *PropBet) Graded() bool {
	return p.Result.Valid
}

// PropPick is a participant's selection for one PropBet; unique per
// (participant, prop_bet) like Pick.
type PropPick struct {
	ID            int64     `db:"id"`
	ParticipantID int64     `db:"participant_id"`
	PropBetID     int64     `db:"prop_bet_id"`
	Selection     string    `db:"selection"`
	CreatedAt     time.Time `db:"created_at"`
}
