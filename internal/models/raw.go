package models

import "time"

// Canonical records produced by the provider boundary. Payload validation
// and team-name normalization happen before these are built; business
// logic never sees raw provider JSON.

// RawGame is one schedule entry.
type RawGame struct {
	ExternalID     string
	HomeTeam       string // canonical code, or verbatim when unresolved
	AwayTeam       string
	HomeUnresolved bool
	AwayUnresolved bool
	Kickoff        time.Time // UTC
	Status         string
	HomeScore      *int
	AwayScore      *int
}

// RawScore is a score update for one game.
type RawScore struct {
	ExternalID string
	HomeScore  *int
	AwayScore  *int
	Status     string
}

// RawOdds is a spread for one game. SpreadPts is the positive magnitude
// the favorite lays.
type RawOdds struct {
	ExternalID         string
	FavoriteTeam       string
	FavoriteUnresolved bool
	SpreadPts          float64
}
