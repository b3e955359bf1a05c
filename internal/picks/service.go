// Package picks is the collaborator-facing surface: submitting picks,
// reading graded results, and the season scoreboard. It sits directly on
// the repository; the deadline gate lives inside the conditional insert
// so callers cannot race it.
package picks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/7777tbone7777/nfl-picks/internal/clock"
	"github.com/7777tbone7777/nfl-picks/internal/metrics"
	"github.com/7777tbone7777/nfl-picks/internal/models"
	"github.com/7777tbone7777/nfl-picks/internal/repository"
	"github.com/7777tbone7777/nfl-picks/internal/scoring"
	"github.com/7777tbone7777/nfl-picks/internal/teams"
)

// ErrUnknownTeam is returned when a submitted team is not a side of the
// target game.
var ErrUnknownTeam = errors.New("selected team is not in this game")

// Service is the pick submission and result surface.
type Service struct {
	db  *repository.Database
	clk *clock.Clock
}

// NewService creates a pick service.
func NewService(db *repository.Database, clk *clock.Clock) *Service {
	return &Service{db: db, clk: clk}
}

// Submit records a pick for the participant on a game. The selected team
// is normalized to its canonical code and must be one of the game's two
// sides. The insert itself enforces the deadline and the one-pick-per-
// game rule atomically.
func (s *Service) Submit(ctx context.Context, participantID, gameID int64, selectedTeam string) (repository.SubmitResult, error) {
	game, err := s.db.Games.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordPickSubmission(string(repository.SubmitUnknownGame))
			return repository.SubmitUnknownGame, nil
		}
		return "", err
	}

	team := selectedTeam
	if code, ok := teams.Resolve(selectedTeam); ok {
		team = code
	}
	if !strings.EqualFold(team, game.HomeTeam) && !strings.EqualFold(team, game.AwayTeam) {
		return "", fmt.Errorf("%w: %q vs %s/%s", ErrUnknownTeam, selectedTeam, game.HomeTeam, game.AwayTeam)
	}

	result, err := s.db.Picks.InsertIfOpen(ctx, participantID, gameID, team, s.clk.NowUTC())
	if err != nil {
		return "", err
	}

	metrics.RecordPickSubmission(string(result))
	return result, nil
}

// Register upserts a participant by chat id and returns the row.
func (s *Service) Register(ctx context.Context, chatID int64, name string) (*models.Participant, error) {
	p := &models.Participant{ChatID: chatID, Name: name}
	if err := s.db.Participants.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ATSResult computes the graded outcome of a participant's pick on a
// game. The stored outcome is authoritative when present; otherwise the
// outcome is computed from current game state, so a caller asking before
// the grading job ran still gets the right answer.
func (s *Service) ATSResult(ctx context.Context, participantID, gameID int64) (models.PickOutcome, error) {
	pick, err := s.db.Picks.GetForParticipantGame(ctx, participantID, gameID)
	if err != nil {
		return "", err
	}

	if pick.Outcome.Valid {
		return models.PickOutcome(pick.Outcome.String), nil
	}

	game, err := s.db.Games.GetByID(ctx, gameID)
	if err != nil {
		return "", err
	}

	return scoring.GradeATS(game, pick.SelectedTeam)
}

// SeasonScoreboard returns season standings, wins descending with
// participant id as the stable tiebreak.
func (s *Service) SeasonScoreboard(ctx context.Context, season int) ([]repository.ScoreboardRow, error) {
	return s.db.Participants.SeasonScoreboard(ctx, season)
}

// SubmitPropPick records a prop selection. The selection must be one of
// the prop's two options; duplicates are rejected by the store.
func (s *Service) SubmitPropPick(ctx context.Context, participantID, propID int64, selection string) (inserted bool, err error) {
	prop, err := s.db.Props.GetByID(ctx, propID)
	if err != nil {
		return false, err
	}

	if !strings.EqualFold(selection, prop.OptionA) && !strings.EqualFold(selection, prop.OptionB) {
		return false, fmt.Errorf("selection %q is not an option of prop %d", selection, propID)
	}

	pick := &models.PropPick{ParticipantID: participantID, PropBetID: propID, Selection: selection}
	return s.db.Props.InsertPick(ctx, pick)
}

// PropResults grades a participant's prop picks for a week against the
// declared results. Props without a declared result stay ungraded.
func (s *Service) PropResults(ctx context.Context, participantID, weekID int64) (map[int64]models.PropOutcome, error) {
	props, err := s.db.Props.GetByWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}

	allPicks, err := s.db.Props.GetPicksByWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}

	var mine []*models.PropPick
	for _, p := range allPicks {
		if p.ParticipantID == participantID {
			mine = append(mine, p)
		}
	}

	return scoring.GradeProps(props, nil, mine), nil
}
