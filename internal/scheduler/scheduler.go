// Package scheduler wires the sync jobs onto cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/config"
	"github.com/7777tbone7777/nfl-picks/internal/jobs"
)

// Scheduler runs the sync jobs on their configured cron expressions.
// Each job carries a no-overlap guard: a tick that fires while the
// previous run of the same job is still going is skipped.
type Scheduler struct {
	cfg    *config.Config
	runner *jobs.Runner
	cron   *cron.Cron

	mu      sync.Mutex
	running map[string]bool
}

// NewScheduler creates a scheduler over a job runner.
func NewScheduler(cfg *config.Config, runner *jobs.Runner) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		runner:  runner,
		cron:    cron.New(),
		running: make(map[string]bool),
	}
}

// Start registers all job schedules and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	schedules := []struct {
		job  string
		spec string
	}{
		{jobs.JobImportUpcomingWeek, s.cfg.ImportWeekCron},
		{jobs.JobSyncScoresActiveWeek, s.cfg.SyncScoresCron},
		{jobs.JobImportOddsUpcoming, s.cfg.ImportOddsCron},
		{jobs.JobGradeCompletedWeek, s.cfg.GradeWeekCron},
	}

	for _, sched := range schedules {
		job := sched.job
		if _, err := s.cron.AddFunc(sched.spec, func() {
			s.runGuarded(ctx, job)
		}); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job, err)
		}
		log.Info().Str("job", job).Str("schedule", sched.spec).Msg("Job scheduled")
	}

	s.cron.Start()
	return nil
}

// Stop stops the cron loop. Running jobs finish; no new ticks fire.
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	log.Info().Msg("Scheduler stopped")
}

// runGuarded runs a job unless the same job is already in flight.
func (s *Scheduler) runGuarded(ctx context.Context, job string) {
	s.mu.Lock()
	if s.running[job] {
		s.mu.Unlock()
		log.Warn().Str("job", job).Msg("Previous run still in flight, skipping tick")
		return
	}
	s.running[job] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running[job] = false
		s.mu.Unlock()
	}()

	s.runner.Run(ctx, job)
}
