package jobs

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/models"
	"github.com/7777tbone7777/nfl-picks/internal/provider"
)

// ImportUpcomingWeek pulls the provider's current week context, imports
// its schedule, and refreshes the week's picks deadline to the earliest
// kickoff. Placeholder matchups (NFC/AFC in unsettled playoff rounds)
// are stored with their unresolved flags set and block only their own
// grading.
func (r *Runner) ImportUpcomingWeek(ctx context.Context) Result {
	res := Result{Job: JobImportUpcomingWeek}

	if r.offseason {
		res.Status = StatusSkipped
		res.Reason = "offseason"
		return res
	}

	season, weekNumber, err := r.provider.FetchCurrentContext(ctx)
	if err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("provider context: %v", err)
		return res
	}

	sel := provider.WeekSelector{SeasonYear: season, WeekNumber: weekNumber}
	raw, err := r.provider.FetchSchedule(ctx, sel)
	if err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("fetch schedule: %v", err)
		return res
	}

	if len(raw) == 0 {
		r.notifier.Anomaly(ctx, "import_week",
			fmt.Sprintf("provider returned no events for %s", sel))
		res.Status = StatusFailed
		res.Reason = "no events"
		return res
	}

	week := &models.Week{SeasonYear: season, WeekNumber: weekNumber}
	if err := r.stores.Weeks.Upsert(ctx, week); err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("upsert week: %v", err)
		return res
	}

	placeholders := 0
	for _, rg := range raw {
		game := gameFromRaw(week.ID, rg)
		if game.Unresolved() {
			placeholders++
		}
		changed, err := r.stores.Games.Upsert(ctx, game)
		if err != nil {
			res.Status = StatusFailed
			res.Reason = fmt.Sprintf("upsert game %s: %v", rg.ExternalID, err)
			return res
		}
		if changed {
			res.Changed++
		}
	}

	if err := r.stores.Weeks.UpdateDeadline(ctx, week.ID); err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("update deadline: %v", err)
		return res
	}

	if placeholders > 0 {
		log.Warn().
			Str("selector", sel.String()).
			Int("placeholders", placeholders).
			Msg("Imported games with unresolved placeholder teams")
	}

	res.Status = StatusSuccess
	return res
}

// gameFromRaw converts a normalized provider record into a Game row.
func gameFromRaw(weekID int64, rg models.RawGame) *models.Game {
	return &models.Game{
		WeekID:         weekID,
		ExternalID:     rg.ExternalID,
		HomeTeam:       rg.HomeTeam,
		AwayTeam:       rg.AwayTeam,
		HomeUnresolved: rg.HomeUnresolved,
		AwayUnresolved: rg.AwayUnresolved,
		Kickoff:        rg.Kickoff,
		Status:         rg.Status,
		HomeScore:      nullInt32(rg.HomeScore),
		AwayScore:      nullInt32(rg.AwayScore),
	}
}

func nullInt32(p *int) sql.NullInt32 {
	if p == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*p), Valid: true}
}
