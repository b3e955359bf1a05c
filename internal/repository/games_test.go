package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7777tbone7777/nfl-picks/internal/models"
)

func TestGameUpsertIdempotent(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	kickoff := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Microsecond)
	week, _ := seedWeekAndGame(t, ctx, db, kickoff)

	game := &models.Game{
		WeekID:     week.ID,
		ExternalID: "401547001",
		HomeTeam:   "KC",
		AwayTeam:   "DEN",
		Kickoff:    kickoff,
		Status:     models.StatusScheduled,
	}

	// Identical re-upsert writes nothing.
	changed, err := db.Games.Upsert(ctx, game)
	require.NoError(t, err)
	assert.False(t, changed)

	// A moved kickoff is a change.
	game.Kickoff = kickoff.Add(time.Hour)
	changed, err = db.Games.Upsert(ctx, game)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestGameUpsertPreservesOdds(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	kickoff := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Microsecond)
	week, game := seedWeekAndGame(t, ctx, db, kickoff)

	changed, err := db.Games.ApplyOdds(ctx, game.ExternalID, "KC", 3.5)
	require.NoError(t, err)
	require.True(t, changed)

	// A schedule refresh without odds must not clobber the spread.
	refresh := &models.Game{
		WeekID:     week.ID,
		ExternalID: game.ExternalID,
		HomeTeam:   "KC",
		AwayTeam:   "DEN",
		Kickoff:    kickoff,
		Status:     models.StatusScheduled,
	}
	_, err = db.Games.Upsert(ctx, refresh)
	require.NoError(t, err)

	stored, err := db.Games.GetByExternalID(ctx, game.ExternalID)
	require.NoError(t, err)
	assert.Equal(t, sql.NullString{String: "KC", Valid: true}, stored.FavoriteTeam)
	assert.Equal(t, 3.5, stored.SpreadPts.Float64)
}

func TestApplyScoreReportsChanges(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	kickoff := time.Now().UTC().Add(-3 * time.Hour).Truncate(time.Microsecond)
	_, game := seedWeekAndGame(t, ctx, db, kickoff)

	changed, err := db.Games.ApplyScore(ctx, game.ExternalID, 27, 20, models.StatusFinal)
	require.NoError(t, err)
	assert.True(t, changed)

	// Identical snapshot writes nothing.
	changed, err = db.Games.ApplyScore(ctx, game.ExternalID, 27, 20, models.StatusFinal)
	require.NoError(t, err)
	assert.False(t, changed)

	// A corrected score is a change again.
	changed, err = db.Games.ApplyScore(ctx, game.ExternalID, 24, 20, models.StatusFinal)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestWeekDeadlineFollowsEarliestKickoff(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	base := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Microsecond)
	week, _ := seedWeekAndGame(t, ctx, db, base)

	early := &models.Game{
		WeekID:     week.ID,
		ExternalID: "401547002",
		HomeTeam:   "SF",
		AwayTeam:   "SEA",
		Kickoff:    base.Add(-24 * time.Hour),
		Status:     models.StatusScheduled,
	}
	_, err := db.Games.Upsert(ctx, early)
	require.NoError(t, err)

	require.NoError(t, db.Weeks.UpdateDeadline(ctx, week.ID))

	deadline, err := db.Weeks.Deadline(ctx, week.ID)
	require.NoError(t, err)
	assert.True(t, deadline.Equal(early.Kickoff), "deadline should be the earliest kickoff")
}

func TestSeasonScoreboardOrdering(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	kickoff := time.Now().UTC().Add(-72 * time.Hour).Truncate(time.Microsecond)
	week, game := seedWeekAndGame(t, ctx, db, kickoff)

	second := &models.Game{
		WeekID:     week.ID,
		ExternalID: "401547002",
		HomeTeam:   "SF",
		AwayTeam:   "SEA",
		Kickoff:    kickoff.Add(3 * time.Hour),
		Status:     models.StatusScheduled,
	}
	_, err := db.Games.Upsert(ctx, second)
	require.NoError(t, err)
	secondStored, err := db.Games.GetByExternalID(ctx, second.ExternalID)
	require.NoError(t, err)

	alice := seedParticipant(t, ctx, db, 1001, "alice")
	bob := seedParticipant(t, ctx, db, 1002, "bob")

	submit := func(p *models.Participant, g *models.Game, team string) int64 {
		result, err := db.Picks.InsertIfOpen(ctx, p.ID, g.ID, team, kickoff.Add(-time.Hour))
		require.NoError(t, err)
		require.Equal(t, SubmitAccepted, result)
		pick, err := db.Picks.GetForParticipantGame(ctx, p.ID, g.ID)
		require.NoError(t, err)
		return pick.ID
	}

	// alice: one win, one loss. bob: one win.
	aliceWin := submit(alice, game, "KC")
	aliceLoss := submit(alice, secondStored, "SF")
	bobWin := submit(bob, secondStored, "SEA")

	require.NoError(t, db.Picks.SetOutcome(ctx, aliceWin, models.OutcomeWin))
	require.NoError(t, db.Picks.SetOutcome(ctx, aliceLoss, models.OutcomeLoss))
	require.NoError(t, db.Picks.SetOutcome(ctx, bobWin, models.OutcomeWin))

	board, err := db.Participants.SeasonScoreboard(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, board, 2)

	// Equal wins: participant id breaks the tie, so alice (lower id)
	// comes first despite her extra loss.
	assert.Equal(t, alice.ID, board[0].ParticipantID)
	assert.Equal(t, 1, board[0].Wins)
	assert.Equal(t, 1, board[0].Losses)
	assert.Equal(t, bob.ID, board[1].ParticipantID)
	assert.Equal(t, 1, board[1].Wins)
	assert.Equal(t, 0, board[1].Losses)
}
