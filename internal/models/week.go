package models

import (
	"database/sql"
	"time"
)

// Week identifies a season period by (season_year, week_number).
// Internal week numbers 19-23 are the playoff rounds.
type Week struct {
	ID         int64 `db:"id"`
	SeasonYear int   `db:"season_year"`
	WeekNumber int   `db:"week_number"`

	// PicksDeadline is the earliest kickoff among the week's games;
	// unset until games are imported.
	PicksDeadline sql.NullTime `db:"picks_deadline"`

	Graded    bool      `db:"graded"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Playoff round numbering: the 18-week regular season is followed by
// internally numbered rounds 19-23.
const (
	WeekWildCard   = 19
	WeekDivisional = 20
	WeekConference = 21
	WeekProBowl    = 22
	WeekSuperBowl  = 23
)

var playoffRoundNames = map[int]string{
	WeekWildCard:   "Wild Card",
	WeekDivisional: "Divisional",
	WeekConference: "Conference Championship",
	WeekProBowl:    "Pro Bowl",
	WeekSuperBowl:  "Super Bowl",
}

// IsPlayoff reports whether the week is a playoff round.
func (w *Week) IsPlayoff() bool {
	return w.WeekNumber >= WeekWildCard && w.WeekNumber <= WeekSuperBowl
}

// RoundName returns the playoff round name for internal week numbers 19-23,
// or "" for regular-season weeks.
func RoundName(weekNumber int) string {
	return playoffRoundNames[weekNumber]
}
