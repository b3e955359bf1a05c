package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropsFromRecords(t *testing.T) {
	records := [][]string{
		{"KC @ SF", "Total points over 47.5", "OVER", "UNDER"},
		{"KC @ SF", "Longest FG over 49.5"}, // wrong field count
		{"SB", "", "YES", "NO"},             // empty description
		{" SB ", " Gatorade color is orange ", " YES ", " NO "},
	}

	props, skipped := propsFromRecords(7, records)
	require.Len(t, props, 2)
	assert.Equal(t, 2, skipped)

	assert.Equal(t, int64(7), props[0].WeekID)
	assert.Equal(t, "KC @ SF", props[0].GameLabel)
	assert.Equal(t, "OVER", props[0].OptionA)

	// Fields are trimmed.
	assert.Equal(t, "SB", props[1].GameLabel)
	assert.Equal(t, "Gatorade color is orange", props[1].Description)
	assert.Equal(t, "YES", props[1].OptionA)
	assert.Equal(t, "NO", props[1].OptionB)
}

func TestResultsFromRecords(t *testing.T) {
	records := [][]string{
		{"12", "OVER"},
		{"13", " UNDER "},
		{"not-a-number", "YES"},
		{"14", ""},
		{"15", "YES", "extra"},
		{"12", "UNDER"}, // later line wins
	}

	results, skipped := resultsFromRecords(records)
	assert.Equal(t, 3, skipped)
	require.Len(t, results, 2)
	assert.Equal(t, "UNDER", results[12])
	assert.Equal(t, "UNDER", results[13])
}
