package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7777tbone7777/nfl-picks/internal/models"
)

const scoreboardFixture = `{
	"season": {"year": 2025, "type": 2},
	"week": {"number": 1},
	"events": [
		{
			"id": "401547001",
			"date": "2025-09-07T17:00Z",
			"competitions": [{
				"date": "2025-09-07T17:00Z",
				"status": {"type": {"state": "post"}},
				"competitors": [
					{"homeAway": "home", "score": "27", "team": {"displayName": "Kansas City Chiefs", "abbreviation": "KC"}},
					{"homeAway": "away", "score": "20", "team": {"displayName": "Denver Broncos", "abbreviation": "DEN"}}
				],
				"odds": [{"details": "KC -3.5"}]
			}]
		},
		{
			"id": "401547002",
			"date": "2025-09-07T20:25Z",
			"competitions": [{
				"date": "2025-09-07T20:25Z",
				"status": {"type": {"state": "pre"}},
				"competitors": [
					{"homeAway": "home", "score": "", "team": {"displayName": "NFC", "abbreviation": "NFC"}},
					{"homeAway": "away", "score": "", "team": {"displayName": "AFC", "abbreviation": "AFC"}}
				],
				"odds": []
			}]
		}
	]
}`

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(scoreboardFixture))
	}))
}

func TestFetchScheduleNormalizes(t *testing.T) {
	srv := fixtureServer(t)
	defer srv.Close()

	c := testClient(t, srv, 3)
	games, err := c.FetchSchedule(context.Background(), WeekSelector{SeasonYear: 2025, WeekNumber: 1})
	require.NoError(t, err)
	require.Len(t, games, 2)

	g := games[0]
	assert.Equal(t, "401547001", g.ExternalID)
	assert.Equal(t, "KC", g.HomeTeam)
	assert.Equal(t, "DEN", g.AwayTeam)
	assert.False(t, g.HomeUnresolved)
	assert.False(t, g.AwayUnresolved)
	assert.Equal(t, models.StatusFinal, g.Status)
	assert.Equal(t, time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC), g.Kickoff)
	require.NotNil(t, g.HomeScore)
	assert.Equal(t, 27, *g.HomeScore)
	require.NotNil(t, g.AwayScore)
	assert.Equal(t, 20, *g.AwayScore)
}

func TestFetchSchedulePlaceholdersStayUnresolved(t *testing.T) {
	srv := fixtureServer(t)
	defer srv.Close()

	c := testClient(t, srv, 3)
	games, err := c.FetchSchedule(context.Background(), WeekSelector{SeasonYear: 2025, WeekNumber: 21})
	require.NoError(t, err)
	require.Len(t, games, 2)

	g := games[1]
	assert.Equal(t, "NFC", g.HomeTeam)
	assert.Equal(t, "AFC", g.AwayTeam)
	assert.True(t, g.HomeUnresolved)
	assert.True(t, g.AwayUnresolved)
	assert.Equal(t, models.StatusScheduled, g.Status)
	assert.Nil(t, g.HomeScore)
}

func TestFetchOdds(t *testing.T) {
	srv := fixtureServer(t)
	defer srv.Close()

	c := testClient(t, srv, 3)
	odds, err := c.FetchOdds(context.Background(), WeekSelector{SeasonYear: 2025, WeekNumber: 1})
	require.NoError(t, err)

	// Only the first event carries odds.
	require.Len(t, odds, 1)
	assert.Equal(t, "401547001", odds[0].ExternalID)
	assert.Equal(t, "KC", odds[0].FavoriteTeam)
	assert.False(t, odds[0].FavoriteUnresolved)
	assert.Equal(t, 3.5, odds[0].SpreadPts)
}

func TestParseOddsDetails(t *testing.T) {
	tests := []struct {
		in     string
		fav    string
		spread float64
		ok     bool
	}{
		{"PIT -5.5", "PIT", 5.5, true},
		{"KC -3", "KC", 3, true},
		{"Green Bay Packers -2.5", "Green Bay Packers", 2.5, true},
		{"SF +1.5", "SF", 1.5, true},
		{"EVEN", "", 0, false},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			fav, spread, ok := parseOddsDetails(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.fav, fav)
				assert.Equal(t, tt.spread, spread)
			}
		})
	}
}

func TestFetchCurrentContext(t *testing.T) {
	t.Run("regular season", func(t *testing.T) {
		srv := fixtureServer(t)
		defer srv.Close()

		c := testClient(t, srv, 3)
		season, week, err := c.FetchCurrentContext(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2025, season)
		assert.Equal(t, 1, week)
	})

	t.Run("postseason maps onto internal week numbers", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"season":{"year":2025,"type":3},"week":{"number":5},"events":[]}`))
		}))
		defer srv.Close()

		c := testClient(t, srv, 3)
		season, week, err := c.FetchCurrentContext(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2025, season)
		assert.Equal(t, 23, week) // Super Bowl
	})
}
