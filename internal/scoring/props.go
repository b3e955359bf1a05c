package scoring

import (
	"strings"

	"github.com/7777tbone7777/nfl-picks/internal/models"
)

// GradeProp grades one selection against a prop's declared result.
// A prop without a declared result stays ungraded.
func GradeProp(prop *models.PropBet, selection string) models.PropOutcome {
	if !prop.Graded() {
		return models.PropUngraded
	}
	if strings.EqualFold(strings.TrimSpace(selection), strings.TrimSpace(prop.Result.String)) {
		return models.PropWin
	}
	return models.PropLoss
}

// GradeProps applies a (possibly partial) mapping of prop id to declared
// result across a set of props. Props absent from the mapping are left
// ungraded; that is explicit partial-grading support, not an error. The
// output is independent of map iteration order.
func GradeProps(props []*models.PropBet, results map[int64]string, picks []*models.PropPick) map[int64]models.PropOutcome {
	declared := make(map[int64]string, len(results))
	for id, res := range results {
		declared[id] = strings.TrimSpace(res)
	}

	out := make(map[int64]models.PropOutcome, len(picks))
	byID := make(map[int64]*models.PropBet, len(props))
	for _, p := range props {
		byID[p.ID] = p
	}

	for _, pick := range picks {
		prop, ok := byID[pick.PropBetID]
		if !ok {
			out[pick.ID] = models.PropUngraded
			continue
		}
		res, ok := declared[prop.ID]
		if !ok {
			// Fall back to a result already stored on the prop.
			if !prop.Graded() {
				out[pick.ID] = models.PropUngraded
				continue
			}
			res = prop.Result.String
		}
		if strings.EqualFold(strings.TrimSpace(pick.Selection), res) {
			out[pick.ID] = models.PropWin
		} else {
			out[pick.ID] = models.PropLoss
		}
	}
	return out
}
