package clock

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowUTC(t *testing.T) {
	instant := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	fake := clockwork.NewFakeClockAt(instant)

	clk, err := NewWithClock(fake, "America/Los_Angeles", "UTC")
	require.NoError(t, err)

	now := clk.NowUTC()
	assert.Equal(t, instant, now)
	assert.Equal(t, time.UTC, now.Location())
}

func TestCoerceLegacy(t *testing.T) {
	clk, err := New("America/Los_Angeles", "America/Los_Angeles")
	require.NoError(t, err)

	t.Run("zone-aware timestamp converts directly", func(t *testing.T) {
		est, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		aware := time.Date(2025, 1, 5, 13, 0, 0, 0, est)
		got := clk.CoerceLegacy(aware)

		assert.Equal(t, aware.UTC(), got)
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("naive timestamp reinterpreted in legacy zone", func(t *testing.T) {
		// A stored wall time of 13:00 with no real zone was 13:00 Pacific.
		naive := time.Date(2025, 1, 5, 13, 0, 0, 0, time.UTC)
		got := clk.CoerceLegacy(naive)

		assert.Equal(t, time.Date(2025, 1, 5, 21, 0, 0, 0, time.UTC), got)
	})

	t.Run("legacy zone UTC is the identity for naive values", func(t *testing.T) {
		utcClk, err := New("America/Los_Angeles", "UTC")
		require.NoError(t, err)

		naive := time.Date(2025, 1, 5, 13, 0, 0, 0, time.UTC)
		assert.Equal(t, naive, utcClk.CoerceLegacy(naive))
	})
}

func TestIsOddsImportDay(t *testing.T) {
	clk, err := New("America/Los_Angeles", "UTC")
	require.NoError(t, err)

	// Tuesday 2025-09-09 10:00 Pacific is 17:00 UTC.
	tuesday := time.Date(2025, 9, 9, 17, 0, 0, 0, time.UTC)
	assert.True(t, clk.IsOddsImportDay(tuesday))

	// Wednesday 01:00 UTC is still Tuesday evening in Los Angeles.
	lateTuesday := time.Date(2025, 9, 10, 1, 0, 0, 0, time.UTC)
	assert.True(t, clk.IsOddsImportDay(lateTuesday))

	monday := time.Date(2025, 9, 8, 17, 0, 0, 0, time.UTC)
	assert.False(t, clk.IsOddsImportDay(monday))
}

func TestNewRejectsBadZones(t *testing.T) {
	_, err := New("Not/AZone", "UTC")
	assert.Error(t, err)

	_, err = New("UTC", "Not/AZone")
	assert.Error(t, err)
}
