// Package clock is the single time-normalization seam. Deadline and kickoff
// comparisons everywhere else happen on the UTC instants produced here.
package clock

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock provides UTC-normalized time plus conversions to the app-local
// zone and reinterpretation of legacy naive timestamps.
type Clock struct {
	inner  clockwork.Clock
	app    *time.Location
	legacy *time.Location
}

// New builds a Clock backed by the real wall clock.
func New(appTZ, legacyTZ string) (*Clock, error) {
	return NewWithClock(clockwork.NewRealClock(), appTZ, legacyTZ)
}

// NewWithClock builds a Clock over an arbitrary clockwork.Clock.
// Tests pass a clockwork.FakeClock here.
func NewWithClock(inner clockwork.Clock, appTZ, legacyTZ string) (*Clock, error) {
	app, err := time.LoadLocation(appTZ)
	if err != nil {
		return nil, fmt.Errorf("load app timezone %q: %w", appTZ, err)
	}
	legacy, err := time.LoadLocation(legacyTZ)
	if err != nil {
		return nil, fmt.Errorf("load legacy timezone %q: %w", legacyTZ, err)
	}
	return &Clock{inner: inner, app: app, legacy: legacy}, nil
}

// NowUTC returns the current instant in UTC.
func (c *Clock) NowUTC() time.Time {
	return c.inner.Now().UTC()
}

// ToAppLocal converts a UTC instant to the configured app-local zone.
func (c *Clock) ToAppLocal(t time.Time) time.Time {
	return t.In(c.app)
}

// CoerceLegacy reinterprets a timestamp of unknown origin. Historically the
// dataset stored wall-clock times without zone information. A value that
// already carries a real zone converts to UTC directly; a naive value (zero
// offset, unnamed zone, i.e. parsed without location) is assumed to be in
// the configured legacy zone and converted from there.
func (c *Clock) CoerceLegacy(t time.Time) time.Time {
	if name, offset := t.Zone(); name != "" && name != "UTC" || offset != 0 {
		return t.UTC()
	}
	// Naive or claims UTC with zero offset: reattach the legacy zone. When
	// the legacy zone is UTC this is the identity.
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), c.legacy)
	return wall.UTC()
}

// IsOddsImportDay reports whether the given instant falls on Tuesday in the
// app-local zone. Odds import is restricted to that day unless overridden.
func (c *Clock) IsOddsImportDay(t time.Time) bool {
	return t.In(c.app).Weekday() == time.Tuesday
}
