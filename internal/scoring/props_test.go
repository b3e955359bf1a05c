package scoring

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/7777tbone7777/nfl-picks/internal/models"
)

func TestGradeProp(t *testing.T) {
	prop := &models.PropBet{
		ID:          1,
		Description: "Total points over 47.5",
		OptionA:     "OVER",
		OptionB:     "UNDER",
		Result:      sql.NullString{String: "OVER", Valid: true},
	}

	assert.Equal(t, models.PropWin, GradeProp(prop, "OVER"))
	assert.Equal(t, models.PropWin, GradeProp(prop, "over"))
	assert.Equal(t, models.PropLoss, GradeProp(prop, "UNDER"))

	ungraded := &models.PropBet{ID: 2, OptionA: "YES", OptionB: "NO"}
	assert.Equal(t, models.PropUngraded, GradeProp(ungraded, "YES"))
}

func TestGradePropsPartial(t *testing.T) {
	props := []*models.PropBet{
		{ID: 1, OptionA: "OVER", OptionB: "UNDER"},
		{ID: 2, OptionA: "YES", OptionB: "NO"},
		{ID: 3, OptionA: "OVER", OptionB: "UNDER"},
	}
	picks := []*models.PropPick{
		{ID: 10, ParticipantID: 1, PropBetID: 1, Selection: "OVER"},
		{ID: 11, ParticipantID: 1, PropBetID: 2, Selection: "NO"},
		{ID: 12, ParticipantID: 1, PropBetID: 3, Selection: "UNDER"},
	}

	// Only props 1 and 2 have declared results; prop 3 stays ungraded.
	results := map[int64]string{
		1: "OVER",
		2: "YES",
	}

	out := GradeProps(props, results, picks)

	assert.Equal(t, models.PropWin, out[10])
	assert.Equal(t, models.PropLoss, out[11])
	assert.Equal(t, models.PropUngraded, out[12])
}

func TestGradePropsFallsBackToStoredResult(t *testing.T) {
	props := []*models.PropBet{
		{ID: 1, OptionA: "OVER", OptionB: "UNDER",
			Result: sql.NullString{String: "UNDER", Valid: true}},
	}
	picks := []*models.PropPick{
		{ID: 10, ParticipantID: 1, PropBetID: 1, Selection: "UNDER"},
	}

	out := GradeProps(props, nil, picks)
	assert.Equal(t, models.PropWin, out[10])
}

func TestGradePropsUnknownProp(t *testing.T) {
	picks := []*models.PropPick{
		{ID: 10, ParticipantID: 1, PropBetID: 99, Selection: "OVER"},
	}

	out := GradeProps(nil, map[int64]string{99: "OVER"}, picks)
	assert.Equal(t, models.PropUngraded, out[10])
}
