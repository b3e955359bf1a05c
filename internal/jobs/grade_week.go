package jobs

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/metrics"
	"github.com/7777tbone7777/nfl-picks/internal/models"
	"github.com/7777tbone7777/nfl-picks/internal/scoring"
)

// GradeCompletedWeek grades every pick on weeks whose games are all
// final. Grading is per pick: a record that cannot be graded (data
// integrity failure, unresolved placeholder) is reported and skipped,
// and only a fully graded week gets its graded flag set. The Pro Bowl
// round is exhibition and is marked settled without grading.
func (r *Runner) GradeCompletedWeek(ctx context.Context) Result {
	res := Result{Job: JobGradeCompletedWeek}

	if r.offseason {
		res.Status = StatusSkipped
		res.Reason = "offseason"
		return res
	}

	season := seasonForTime(r.clk.NowUTC())
	weeks, err := r.stores.Weeks.UngradedFinalWeeks(ctx, season)
	if err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("ungraded weeks: %v", err)
		return res
	}

	if len(weeks) == 0 {
		res.Status = StatusSkipped
		res.Reason = "no completed ungraded weeks"
		return res
	}

	for _, week := range weeks {
		if week.WeekNumber == models.WeekProBowl {
			if err := r.stores.Weeks.SetGraded(ctx, week.ID, true); err != nil {
				res.Status = StatusFailed
				res.Reason = fmt.Sprintf("settle exhibition week: %v", err)
				return res
			}
			log.Info().Int64("week_id", week.ID).Msg("Exhibition week settled without grading")
			continue
		}

		graded, clean, err := r.gradeWeek(ctx, week)
		if err != nil {
			res.Status = StatusFailed
			res.Reason = fmt.Sprintf("grade week %d-W%d: %v", week.SeasonYear, week.WeekNumber, err)
			return res
		}
		res.Changed += graded

		if clean {
			if err := r.stores.Weeks.SetGraded(ctx, week.ID, true); err != nil {
				res.Status = StatusFailed
				res.Reason = fmt.Sprintf("set graded flag: %v", err)
				return res
			}
			if err := r.claimResultReminders(ctx, week.ID); err != nil {
				res.Status = StatusFailed
				res.Reason = fmt.Sprintf("claim result reminders: %v", err)
				return res
			}
			log.Info().
				Int("season", week.SeasonYear).
				Int("week", week.WeekNumber).
				Int("picks_graded", graded).
				Msg("Week graded")
		}
	}

	res.Status = StatusSuccess
	return res
}

// claimResultReminders marks the week's results as broadcast-ready, once
// per participant. The ledger's unique constraint means a re-run of the
// grading job claims nothing the second time.
func (r *Runner) claimResultReminders(ctx context.Context, weekID int64) error {
	participants, err := r.stores.Participants.List(ctx)
	if err != nil {
		return err
	}

	for _, p := range participants {
		claimed, err := r.stores.Reminders.Claim(ctx, models.ReminderWeekResults, p.ID, weekID)
		if err != nil {
			return err
		}
		if claimed {
			log.Debug().
				Int64("participant_id", p.ID).
				Int64("week_id", weekID).
				Msg("Week results reminder claimed")
		}
	}

	return nil
}

// gradeWeek grades one week's picks. clean reports whether every pick
// reached a decided outcome; an unclean week stays open for the next
// run.
func (r *Runner) gradeWeek(ctx context.Context, week *models.Week) (graded int, clean bool, err error) {
	games, err := r.stores.Games.GetByWeek(ctx, week.ID)
	if err != nil {
		return 0, false, err
	}
	byID := make(map[int64]*models.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}

	picks, err := r.stores.Picks.GetByWeek(ctx, week.ID)
	if err != nil {
		return 0, false, err
	}

	clean = true
	for _, pick := range picks {
		if pick.Outcome.Valid {
			continue
		}

		game, ok := byID[pick.GameID]
		if !ok {
			r.notifier.Anomaly(ctx, "grade_week",
				fmt.Sprintf("pick %d references unknown game %d", pick.ID, pick.GameID))
			clean = false
			continue
		}

		outcome, err := scoring.GradeATS(game, pick.SelectedTeam)
		if err != nil {
			// Per-record failure: report, leave ungraded, keep going.
			r.notifier.Anomaly(ctx, "grade_week", err.Error())
			clean = false
			continue
		}
		if outcome == models.OutcomeUndecided {
			clean = false
			continue
		}

		if err := r.stores.Picks.SetOutcome(ctx, pick.ID, outcome); err != nil {
			return graded, false, err
		}
		metrics.RecordGradedOutcome(string(outcome))
		graded++
	}

	return graded, clean, nil
}
