// Package scoring holds the pure grading functions: the deadline gate,
// against-the-spread scoring, and proposition grading. Nothing here does
// I/O or reads ambient state.
package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/7777tbone7777/nfl-picks/internal/models"
)

// ErrDataIntegrity marks a record too malformed to grade, e.g. a negative
// spread. Callers fail the single record, never the batch.
var ErrDataIntegrity = errors.New("data integrity error")

// GradeATS computes the against-the-spread outcome of picking pickedTeam
// in game g.
//
// margin = favorite score - other score. The favorite covers when
// margin > spread, a push is margin == spread, otherwise the underdog
// covers. A push is a push for either side. A spread of exactly 0 is a
// pick'em with the same push rule at margin 0.
//
// Undecided is returned rather than a guess whenever the game is not
// final, lacks scores or a spread, or still has a placeholder team.
// A negative spread is a data-integrity failure, not a grade.
func GradeATS(g *models.Game, pickedTeam string) (models.PickOutcome, error) {
	if !g.IsFinal() || !g.HomeScore.Valid || !g.AwayScore.Valid {
		return models.OutcomeUndecided, nil
	}
	if g.Unresolved() {
		return models.OutcomeUndecided, nil
	}
	if !g.HasSpread() {
		return models.OutcomeUndecided, nil
	}

	spread := g.SpreadPts.Float64
	if spread < 0 {
		return models.OutcomeUndecided, fmt.Errorf("%w: negative spread %.1f on game %s", ErrDataIntegrity, spread, g.ExternalID)
	}

	var favScore, otherScore int32
	var favTeam, dogTeam string
	switch {
	case strings.EqualFold(g.FavoriteTeam.String, g.HomeTeam):
		favScore, otherScore = g.HomeScore.Int32, g.AwayScore.Int32
		favTeam, dogTeam = g.HomeTeam, g.AwayTeam
	case strings.EqualFold(g.FavoriteTeam.String, g.AwayTeam):
		favScore, otherScore = g.AwayScore.Int32, g.HomeScore.Int32
		favTeam, dogTeam = g.AwayTeam, g.HomeTeam
	default:
		return models.OutcomeUndecided, fmt.Errorf("%w: favorite %q is neither side of game %s", ErrDataIntegrity, g.FavoriteTeam.String, g.ExternalID)
	}

	margin := float64(favScore - otherScore)
	var atsWinner string
	switch {
	case margin > spread:
		atsWinner = favTeam
	case margin < spread:
		atsWinner = dogTeam
	default:
		return models.OutcomePush, nil
	}

	switch {
	case strings.EqualFold(pickedTeam, atsWinner):
		return models.OutcomeWin, nil
	case strings.EqualFold(pickedTeam, favTeam) || strings.EqualFold(pickedTeam, dogTeam):
		return models.OutcomeLoss, nil
	default:
		return models.OutcomeUndecided, fmt.Errorf("%w: picked team %q is neither side of game %s", ErrDataIntegrity, pickedTeam, g.ExternalID)
	}
}
