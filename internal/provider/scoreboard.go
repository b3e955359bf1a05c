package provider

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/models"
	"github.com/7777tbone7777/nfl-picks/internal/teams"
)

// Wire types for the scoreboard payload. Only the fields the core needs
// are declared; the rest of the provider's JSON is ignored.

type scoreboardResponse struct {
	Events []scoreboardEvent `json:"events"`
	Season struct {
		Year int `json:"year"`
		Type any `json:"type"`
	} `json:"season"`
	Week struct {
		Number int `json:"number"`
	} `json:"week"`
}

type scoreboardEvent struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Competitors []competitor `json:"competitors"`
	Status      struct {
		Type struct {
			State string `json:"state"` // pre / in / post
		} `json:"type"`
	} `json:"status"`
	Odds []struct {
		Details string `json:"details"` // e.g. "PIT -5.5"
	} `json:"odds"`
}

type competitor struct {
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Winner   bool   `json:"winner"`
	Team     struct {
		DisplayName  string `json:"displayName"`
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}

var stateToStatus = map[string]string{
	"pre":  models.StatusScheduled,
	"in":   models.StatusInProgress,
	"post": models.StatusFinal,
}

// oddsDetails matches strings like "PIT -5.5" or "Green Bay Packers -2.5".
var oddsDetails = regexp.MustCompile(`^\s*([A-Za-z .'\-&0-9]+?)\s*([+-]?\d+(?:\.\d+)?)\s*$`)

func (c *Client) scoreboardURL(sel WeekSelector) string {
	seasonType, week := sel.seasonTypeAndWeek()
	return fmt.Sprintf("%s/scoreboard?seasontype=%d&week=%d&year=%d",
		c.baseURL, seasonType, week, sel.SeasonYear)
}

// FetchSchedule returns the canonical schedule records for a week. Team
// names that do not resolve to a canonical code (playoff placeholders
// such as "NFC" or "AFC") pass through verbatim with the corresponding
// Unresolved flag set so the orchestrator can apply its exception rather
// than write bad data.
func (c *Client) FetchSchedule(ctx context.Context, sel WeekSelector) ([]models.RawGame, error) {
	var resp scoreboardResponse
	if err := c.getJSON(ctx, "fetch_schedule", c.scoreboardURL(sel), &resp); err != nil {
		return nil, err
	}

	games := make([]models.RawGame, 0, len(resp.Events))
	for _, ev := range resp.Events {
		g, ok := normalizeEvent(ev)
		if !ok {
			log.Warn().Str("event_id", ev.ID).Str("selector", sel.String()).Msg("Skipping malformed scoreboard event")
			continue
		}
		games = append(games, g)
	}
	return games, nil
}

// FetchScores returns score records for a week. The same scoreboard
// endpoint carries scores; only the score-bearing fields are extracted.
func (c *Client) FetchScores(ctx context.Context, sel WeekSelector) ([]models.RawScore, error) {
	raw, err := c.FetchSchedule(ctx, sel)
	if err != nil {
		return nil, err
	}

	scores := make([]models.RawScore, 0, len(raw))
	for _, g := range raw {
		scores = append(scores, models.RawScore{
			ExternalID: g.ExternalID,
			HomeScore:  g.HomeScore,
			AwayScore:  g.AwayScore,
			Status:     g.Status,
		})
	}
	return scores, nil
}

// FetchOdds returns spread records for a week. Events without odds
// attached yet are simply absent from the result.
func (c *Client) FetchOdds(ctx context.Context, sel WeekSelector) ([]models.RawOdds, error) {
	var resp scoreboardResponse
	if err := c.getJSON(ctx, "fetch_odds", c.scoreboardURL(sel), &resp); err != nil {
		return nil, err
	}

	var odds []models.RawOdds
	for _, ev := range resp.Events {
		if len(ev.Competitions) == 0 || len(ev.Competitions[0].Odds) == 0 {
			continue
		}
		details := ev.Competitions[0].Odds[0].Details
		favName, spread, ok := parseOddsDetails(details)
		if !ok {
			log.Warn().Str("event_id", ev.ID).Str("details", details).Msg("Unparseable odds details")
			continue
		}

		code, resolved := teams.Resolve(favName)
		if !resolved {
			code = favName
		}
		odds = append(odds, models.RawOdds{
			ExternalID:         ev.ID,
			FavoriteTeam:       code,
			FavoriteUnresolved: !resolved,
			SpreadPts:          spread,
		})
	}
	return odds, nil
}

// normalizeEvent turns one provider event into a canonical RawGame.
func normalizeEvent(ev scoreboardEvent) (models.RawGame, bool) {
	if len(ev.Competitions) == 0 {
		return models.RawGame{}, false
	}
	comp := ev.Competitions[0]

	var home, away *competitor
	for i := range comp.Competitors {
		switch comp.Competitors[i].HomeAway {
		case "home":
			home = &comp.Competitors[i]
		case "away":
			away = &comp.Competitors[i]
		}
	}
	if home == nil || away == nil {
		return models.RawGame{}, false
	}

	dateStr := comp.Date
	if dateStr == "" {
		dateStr = ev.Date
	}
	kickoff, err := parseEventTime(dateStr)
	if err != nil {
		return models.RawGame{}, false
	}

	status, ok := stateToStatus[strings.ToLower(comp.Status.Type.State)]
	if !ok {
		status = models.StatusScheduled
	}

	homeName, homeResolved := resolveName(home)
	awayName, awayResolved := resolveName(away)

	return models.RawGame{
		ExternalID:     ev.ID,
		HomeTeam:       homeName,
		AwayTeam:       awayName,
		HomeUnresolved: !homeResolved,
		AwayUnresolved: !awayResolved,
		Kickoff:        kickoff,
		Status:         status,
		HomeScore:      parseScore(home.Score),
		AwayScore:      parseScore(away.Score),
	}, true
}

func resolveName(c *competitor) (string, bool) {
	name := c.Team.DisplayName
	if name == "" {
		name = c.Team.Abbreviation
	}
	if code, ok := teams.Resolve(name); ok {
		return code, true
	}
	if code, ok := teams.Resolve(c.Team.Abbreviation); ok {
		return code, true
	}
	return name, false
}

// parseEventTime handles the provider's ISO-8601 timestamps, which use a
// trailing Z for UTC.
func parseEventTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty event time")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Some payloads omit seconds.
		t, err = time.Parse("2006-01-02T15:04Z07:00", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse event time %q: %w", s, err)
		}
	}
	return t.UTC(), nil
}

func parseScore(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// parseOddsDetails extracts (favorite name, spread magnitude) from a
// details string like "PIT -5.5". The sign is dropped: the stored spread
// is always the positive number of points the favorite lays.
func parseOddsDetails(details string) (string, float64, bool) {
	m := oddsDetails.FindStringSubmatch(details)
	if m == nil {
		return "", 0, false
	}
	spread, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", 0, false
	}
	if spread < 0 {
		spread = -spread
	}
	return strings.TrimSpace(m[1]), spread, true
}

// FetchCurrentContext hits the parameterless scoreboard and reports the
// provider's current (season year, internal week number). Postseason
// weeks are mapped back onto internal numbers 19-23.
func (c *Client) FetchCurrentContext(ctx context.Context) (seasonYear, weekNumber int, err error) {
	var resp scoreboardResponse
	url := fmt.Sprintf("%s/scoreboard", c.baseURL)
	if err := c.getJSON(ctx, "fetch_context", url, &resp); err != nil {
		return 0, 0, err
	}

	week := resp.Week.Number
	switch t := resp.Season.Type.(type) {
	case float64:
		if int(t) == 3 {
			week += 18
		}
	case string:
		if strings.EqualFold(t, "post") {
			week += 18
		}
	}
	return resp.Season.Year, week, nil
}
