package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/provider"
	"github.com/7777tbone7777/nfl-picks/internal/repository"
)

// SyncScoresActiveWeek refreshes scores and statuses for the active
// week. Writes are guarded in the store, so an unchanged snapshot
// touches no rows. When a score moves on a game that was already graded,
// the game's pick outcomes are wiped and the week's graded flag is
// cleared so the grading job picks it up again.
func (r *Runner) SyncScoresActiveWeek(ctx context.Context) Result {
	res := Result{Job: JobSyncScoresActiveWeek}

	if r.offseason {
		res.Status = StatusSkipped
		res.Reason = "offseason"
		return res
	}

	season := seasonForTime(r.clk.NowUTC())
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
	scores, err := r.provider.FetchScores(ctx, sel)
	if err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("fetch scores: %v", err)
		return res
	}

	if len(scores) == 0 {
		r.notifier.Anomaly(ctx, "sync_scores",
			fmt.Sprintf("provider returned no events for %s", sel))
		res.Status = StatusFailed
		res.Reason = "no events"
		return res
	}

	regrade := false
	for _, sc := range scores {
		if sc.HomeScore == nil || sc.AwayScore == nil {
			continue
		}

		changed, err := r.stores.Games.ApplyScore(ctx, sc.ExternalID, *sc.HomeScore, *sc.AwayScore, sc.Status)
		if err != nil {
			res.Status = StatusFailed
			res.Reason = fmt.Sprintf("apply score %s: %v", sc.ExternalID, err)
			return res
		}
		if !changed {
			continue
		}
		res.Changed++

		// A score moving on an already-graded week invalidates the
		// affected game's outcomes.
		if week.Graded {
			game, err := r.stores.Games.GetByExternalID(ctx, sc.ExternalID)
			if err != nil {
				res.Status = StatusFailed
				res.Reason = fmt.Sprintf("load changed game %s: %v", sc.ExternalID, err)
				return res
			}
			if err := r.stores.Picks.ClearOutcomesForGame(ctx, game.ID); err != nil {
				res.Status = StatusFailed
				res.Reason = fmt.Sprintf("clear outcomes for game %s: %v", sc.ExternalID, err)
				return res
			}
			regrade = true
			log.Warn().
				Str("external_id", sc.ExternalID).
				Int64("week_id", week.ID).
				Msg("Score changed on graded week, outcomes invalidated")
		}
	}

	if regrade {
		if err := r.stores.Weeks.SetGraded(ctx, week.ID, false); err != nil {
			res.Status = StatusFailed
			res.Reason = fmt.Sprintf("reopen week grading: %v", err)
			return res
		}
	}

	res.Status = StatusSuccess
	return res
}
