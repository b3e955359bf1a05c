// Package jobs implements the sync jobs that keep the picks database in
// step with the data provider: week import, score sync, odds import, and
// week grading. Each job is idempotent and safe to re-run; repeated runs
// against unchanged provider data write nothing.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/clock"
	"github.com/7777tbone7777/nfl-picks/internal/config"
	"github.com/7777tbone7777/nfl-picks/internal/metrics"
	"github.com/7777tbone7777/nfl-picks/internal/models"
	"github.com/7777tbone7777/nfl-picks/internal/notify"
	"github.com/7777tbone7777/nfl-picks/internal/provider"
	"github.com/7777tbone7777/nfl-picks/internal/repository"
)

// Job names, used by the scheduler and the manual runner.
const (
	JobImportUpcomingWeek   = "import_upcoming_week"
	JobSyncScoresActiveWeek = "sync_scores_active_week"
	JobImportOddsUpcoming   = "import_odds_upcoming"
	JobGradeCompletedWeek   = "grade_completed_week"
)

// Names lists every runnable job.
func Names() []string {
	return []string{
		JobImportUpcomingWeek,
		JobSyncScoresActiveWeek,
		JobImportOddsUpcoming,
		JobGradeCompletedWeek,
	}
}

// Provider is the slice of the data client the jobs consume.
type Provider interface {
	FetchCurrentContext(ctx context.Context) (seasonYear, weekNumber int, err error)
	FetchSchedule(ctx context.Context, sel provider.WeekSelector) ([]models.RawGame, error)
	FetchScores(ctx context.Context, sel provider.WeekSelector) ([]models.RawScore, error)
	FetchOdds(ctx context.Context, sel provider.WeekSelector) ([]models.RawOdds, error)
}

// WeekStore is the week persistence the jobs consume.
type WeekStore interface {
	Upsert(ctx context.Context, week *models.Week) error
	ActiveWeek(ctx context.Context, season int) (*models.Week, error)
	UpdateDeadline(ctx context.Context, weekID int64) error
	SetGraded(ctx context.Context, weekID int64, graded bool) error
	UngradedFinalWeeks(ctx context.Context, season int) ([]*models.Week, error)
}

// GameStore is the game persistence the jobs consume.
type GameStore interface {
	Upsert(ctx context.Context, game *models.Game) (changed bool, err error)
	ApplyScore(ctx context.Context, externalID string, homeScore, awayScore int, status string) (bool, error)
	ApplyOdds(ctx context.Context, externalID, favorite string, spreadPts float64) (bool, error)
	GetByWeek(ctx context.Context, weekID int64) ([]*models.Game, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.Game, error)
}

// PickStore is the pick persistence the jobs consume.
type PickStore interface {
	GetByWeek(ctx context.Context, weekID int64) ([]*models.Pick, error)
	SetOutcome(ctx context.Context, pickID int64, outcome models.PickOutcome) error
	ClearOutcomesForGame(ctx context.Context, gameID int64) error
}

// ParticipantStore is the participant persistence the jobs consume.
type ParticipantStore interface {
	List(ctx context.Context) ([]*models.Participant, error)
}

// ReminderStore is the reminder ledger the jobs consume.
type ReminderStore interface {
	Claim(ctx context.Context, kind string, participantID, refID int64) (bool, error)
}

// Stores bundles the persistence interfaces.
type Stores struct {
	Weeks        WeekStore
	Games        GameStore
	Picks        PickStore
	Participants ParticipantStore
	Reminders    ReminderStore
}

// StoresFromDB adapts the repository layer to the job interfaces.
func StoresFromDB(db *repository.Database) Stores {
	return Stores{
		Weeks:        db.Weeks,
		Games:        db.Games,
		Picks:        db.Picks,
		Participants: db.Participants,
		Reminders:    db.Reminders,
	}
}

// Status classifies a job run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result describes one job run.
type Result struct {
	Job      string
	Status   Status
	Reason   string
	Changed  int
	Duration time.Duration
}

// Runner executes the sync jobs against a provider and store.
type Runner struct {
	stores   Stores
	provider Provider
	notifier notify.Notifier
	clk      *clock.Clock

	offseason       bool
	allowAnyDayOdds bool
}

// NewRunner assembles a Runner from configuration and collaborators.
func NewRunner(cfg *config.Config, clk *clock.Clock, p Provider, stores Stores, notifier notify.Notifier) *Runner {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Runner{
		stores:          stores,
		provider:        p,
		notifier:        notifier,
		clk:             clk,
		offseason:       cfg.Offseason,
		allowAnyDayOdds: cfg.AllowAnyDayOddsImport,
	}
}

// Run dispatches a job by name, records metrics, and logs the result.
func (r *Runner) Run(ctx context.Context, job string) Result {
	start := r.clk.NowUTC()

	var result Result
	switch job {
	case JobImportUpcomingWeek:
		result = r.ImportUpcomingWeek(ctx)
	case JobSyncScoresActiveWeek:
		result = r.SyncScoresActiveWeek(ctx)
	case JobImportOddsUpcoming:
		result = r.ImportOddsUpcoming(ctx)
	case JobGradeCompletedWeek:
		result = r.GradeCompletedWeek(ctx)
	default:
		result = Result{Job: job, Status: StatusFailed, Reason: fmt.Sprintf("unknown job %q", job)}
	}

	result.Duration = r.clk.NowUTC().Sub(start)
	metrics.RecordJob(result.Job, string(result.Status), result.Duration.Seconds())

	evt := log.Info()
	if result.Status == StatusFailed {
		evt = log.Error()
	}
	evt.
		Str("job", result.Job).
		Str("status", string(result.Status)).
		Str("reason", result.Reason).
		Int("changed", result.Changed).
		Dur("duration", result.Duration).
		Msg("Job finished")

	return result
}

// seasonForTime maps an instant to the NFL season it belongs to: a
// season spans August through the following July.
func seasonForTime(t time.Time) int {
	if t.Month() >= time.August {
		return t.Year()
	}
	return t.Year() - 1
}
