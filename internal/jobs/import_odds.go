package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/7777tbone7777/nfl-picks/internal/provider"
	"github.com/7777tbone7777/nfl-picks/internal/repository"
)

// ImportOddsUpcoming imports spreads for the active week. The job only
// runs on the configured odds-import day (Tuesday in the app zone, when
// lines for the coming week have settled) unless the any-day override is
// set. Records with an unresolvable favorite are skipped individually
// and reported; they never fail the batch.
func (r *Runner) ImportOddsUpcoming(ctx context.Context) Result {
	res := Result{Job: JobImportOddsUpcoming}

	if r.offseason {
		res.Status = StatusSkipped
		res.Reason = "offseason"
		return res
	}

	now := r.clk.NowUTC()
	if !r.allowAnyDayOdds && !r.clk.IsOddsImportDay(now) {
		res.Status = StatusSkipped
		res.Reason = "not odds import day"
		return res
	}

	season := seasonForTime(now)
	week, err := r.stores.Weeks.ActiveWeek(ctx, season)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			res.Status = StatusSkipped
			res.Reason = "no active week"
			return res
		}
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("active week: %v", err)
		return res
	}

	sel := provider.WeekSelector{SeasonYear: week.SeasonYear, WeekNumber: week.WeekNumber}
	odds, err := r.provider.FetchOdds(ctx, sel)
	if err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("fetch odds: %v", err)
		return res
	}

	if len(odds) == 0 {
		// Lines simply not posted yet; not an anomaly.
		res.Status = StatusSuccess
		res.Reason = "no odds posted"
		return res
	}

	for _, o := range odds {
		if o.FavoriteUnresolved {
			r.notifier.Anomaly(ctx, "import_odds",
				fmt.Sprintf("unresolvable favorite %q on game %s", o.FavoriteTeam, o.ExternalID))
			continue
		}
		if o.SpreadPts < 0 {
			r.notifier.Anomaly(ctx, "import_odds",
				fmt.Sprintf("negative spread %.1f on game %s", o.SpreadPts, o.ExternalID))
			continue
		}

		changed, err := r.stores.Games.ApplyOdds(ctx, o.ExternalID, o.FavoriteTeam, o.SpreadPts)
		if err != nil {
			res.Status = StatusFailed
			res.Reason = fmt.Sprintf("apply odds %s: %v", o.ExternalID, err)
			return res
		}
		if changed {
			res.Changed++
		}
	}

	res.Status = StatusSuccess
	return res
}
