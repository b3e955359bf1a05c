package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// schema is the full DDL for the picks database. Every statement is
// idempotent so Bootstrap can run on every startup. The unique
// constraints are load-bearing: they are what makes pick submission and
// reminder claims safe under concurrent writers.
const schema = `
CREATE TABLE IF NOT EXISTS weeks (
	id             BIGSERIAL PRIMARY KEY,
	season_year    INT NOT NULL,
	week_number    INT NOT NULL,
	picks_deadline TIMESTAMPTZ,
	graded         BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (season_year, week_number)
);

CREATE TABLE IF NOT EXISTS games (
	id              BIGSERIAL PRIMARY KEY,
	week_id         BIGINT NOT NULL REFERENCES weeks(id) ON DELETE CASCADE,
	external_id     TEXT NOT NULL UNIQUE,
	home_team       TEXT NOT NULL,
	away_team       TEXT NOT NULL,
	home_unresolved BOOLEAN NOT NULL DEFAULT FALSE,
	away_unresolved BOOLEAN NOT NULL DEFAULT FALSE,
	kickoff         TIMESTAMPTZ NOT NULL,
	status          TEXT NOT NULL DEFAULT 'scheduled',
	favorite_team   TEXT,
	spread_pts      DOUBLE PRECISION,
	home_score      INT,
	away_score      INT,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_games_week_id ON games(week_id);
CREATE INDEX IF NOT EXISTS idx_games_status ON games(status);

CREATE TABLE IF NOT EXISTS participants (
	id         BIGSERIAL PRIMARY KEY,
	chat_id    BIGINT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS picks (
	id             BIGSERIAL PRIMARY KEY,
	participant_id BIGINT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
	game_id        BIGINT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
	selected_team  TEXT NOT NULL,
	outcome        TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (participant_id, game_id)
);

CREATE TABLE IF NOT EXISTS prop_bets (
	id          BIGSERIAL PRIMARY KEY,
	week_id     BIGINT NOT NULL REFERENCES weeks(id) ON DELETE CASCADE,
	game_label  TEXT NOT NULL,
	description TEXT NOT NULL,
	option_a    TEXT NOT NULL,
	option_b    TEXT NOT NULL,
	result      TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS prop_picks (
	id             BIGSERIAL PRIMARY KEY,
	participant_id BIGINT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
	prop_bet_id    BIGINT NOT NULL REFERENCES prop_bets(id) ON DELETE CASCADE,
	selection      TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (participant_id, prop_bet_id)
);

CREATE TABLE IF NOT EXISTS reminders (
	id             BIGSERIAL PRIMARY KEY,
	kind           TEXT NOT NULL,
	participant_id BIGINT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
	ref_id         BIGINT NOT NULL,
	sent_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (kind, participant_id, ref_id)
);
`

// Bootstrap creates all tables, indexes, and constraints if they do not
// already exist.
func (db *Database) Bootstrap(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	log.Info().Msg("Database schema verified")
	return nil
}
