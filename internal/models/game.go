package models

import (
	"database/sql"
	"time"
)

// Game statuses. The provider's pre/in/post states map onto these.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusFinal      = "final"
)

// Game is one matchup belonging to a Week. ExternalID is the provider's
// event identifier and is unique across the dataset; imports upsert by it.
type Game struct {
	ID         int64  `db:"id"`
	WeekID     int64  `db:"week_id"`
	ExternalID string `db:"external_id"`

	// Canonical team codes, or the provider's verbatim name when the
	// corresponding Unresolved flag is set (playoff placeholders).
	HomeTeam       string `db:"home_team"`
	AwayTeam       string `db:"away_team"`
	HomeUnresolved bool   `db:"home_unresolved"`
	AwayUnresolved bool   `db:"away_unresolved"`

	Kickoff time.Time `db:"kickoff"`
	Status  string    `db:"status"`

	// Odds; absent until the odds import runs.
	FavoriteTeam sql.NullString  `db:"favorite_team"`
	SpreadPts    sql.NullFloat64 `db:"spread_pts"`

	// Scores; absent until the game progresses.
	HomeScore sql.NullInt32 `db:"home_score"`
	AwayScore sql.NullInt32 `db:"away_score"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsFinal returns true if the game is completed.
func (g *Game) IsFinal() bool {
	return g.Status == StatusFinal
}

// IsScheduled returns true if the game has not started.
func (g *Game) IsScheduled() bool {
	return g.Status == StatusScheduled
}

// HasSpread reports whether odds were attached.
func (g *Game) HasSpread() bool {
	return g.FavoriteTeam.Valid && g.SpreadPts.Valid
}

// Unresolved reports whether either side is still a placeholder. Such a
// game blocks its own grading but not the rest of the week.
func (g *Game) Unresolved() bool {
	return g.HomeUnresolved || g.AwayUnresolved
}
