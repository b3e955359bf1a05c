package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7777tbone7777/nfl-picks/internal/models"
)

func seedWeekAndGame(t *testing.T, ctx context.Context, db *Database, kickoff time.Time) (*models.Week, *models.Game) {
	t.Helper()

	week := &models.Week{SeasonYear: 2025, WeekNumber: 1}
	require.NoError(t, db.Weeks.Upsert(ctx, week))

	game := &models.Game{
		WeekID:     week.ID,
		ExternalID: "401547001",
		HomeTeam:   "KC",
		AwayTeam:   "DEN",
		Kickoff:    kickoff,
		Status:     models.StatusScheduled,
	}
	_, err := db.Games.Upsert(ctx, game)
	require.NoError(t, err)

	stored, err := db.Games.GetByExternalID(ctx, game.ExternalID)
	require.NoError(t, err)
	return week, stored
}

func seedParticipant(t *testing.T, ctx context.Context, db *Database, chatID int64, name string) *models.Participant {
	t.Helper()
	p := &models.Participant{ChatID: chatID, Name: name}
	require.NoError(t, db.Participants.Upsert(ctx, p))
	return p
}

func TestInsertIfOpen(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	kickoff := time.Now().UTC().Add(time.Hour).Truncate(time.Microsecond)
	_, game := seedWeekAndGame(t, ctx, db, kickoff)
	alice := seedParticipant(t, ctx, db, 1001, "alice")

	t.Run("accepted before kickoff", func(t *testing.T) {
		result, err := db.Picks.InsertIfOpen(ctx, alice.ID, game.ID, "KC", kickoff.Add(-time.Second))
		require.NoError(t, err)
		assert.Equal(t, SubmitAccepted, result)
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		result, err := db.Picks.InsertIfOpen(ctx, alice.ID, game.ID, "DEN", kickoff.Add(-time.Second))
		require.NoError(t, err)
		assert.Equal(t, SubmitDuplicate, result)

		// The original pick is untouched.
		pick, err := db.Picks.GetForParticipantGame(ctx, alice.ID, game.ID)
		require.NoError(t, err)
		assert.Equal(t, "KC", pick.SelectedTeam)
	})

	t.Run("deadline passed at kickoff", func(t *testing.T) {
		bob := seedParticipant(t, ctx, db, 1002, "bob")

		result, err := db.Picks.InsertIfOpen(ctx, bob.ID, game.ID, "KC", kickoff)
		require.NoError(t, err)
		assert.Equal(t, SubmitDeadlinePassed, result)

		result, err = db.Picks.InsertIfOpen(ctx, bob.ID, game.ID, "KC", kickoff.Add(time.Second))
		require.NoError(t, err)
		assert.Equal(t, SubmitDeadlinePassed, result)
	})

	t.Run("unknown game", func(t *testing.T) {
		result, err := db.Picks.InsertIfOpen(ctx, alice.ID, 999999, "KC", kickoff.Add(-time.Second))
		require.NoError(t, err)
		assert.Equal(t, SubmitUnknownGame, result)
	})
}

func TestPickOutcomeRoundTrip(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	kickoff := time.Now().UTC().Add(time.Hour).Truncate(time.Microsecond)
	week, game := seedWeekAndGame(t, ctx, db, kickoff)
	alice := seedParticipant(t, ctx, db, 1001, "alice")

	result, err := db.Picks.InsertIfOpen(ctx, alice.ID, game.ID, "KC", kickoff.Add(-time.Minute))
	require.NoError(t, err)
	require.Equal(t, SubmitAccepted, result)

	picks, err := db.Picks.GetByWeek(ctx, week.ID)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.False(t, picks[0].Outcome.Valid)

	require.NoError(t, db.Picks.SetOutcome(ctx, picks[0].ID, models.OutcomeWin))

	picks, err = db.Picks.GetByWeek(ctx, week.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.OutcomeWin), picks[0].Outcome.String)

	require.NoError(t, db.Picks.ClearOutcomesForGame(ctx, game.ID))

	picks, err = db.Picks.GetByWeek(ctx, week.ID)
	require.NoError(t, err)
	assert.False(t, picks[0].Outcome.Valid)
}
