package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, srv *httptest.Server, retries int) *Client {
	t.Helper()
	return NewClient(srv.URL, 5*time.Second, retries, 2*time.Millisecond,
		WithHTTPClient(srv.Client()))
}

func TestGetSucceedsAfterTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := testClient(t, srv, 3)
	body, err := c.get(context.Background(), "test", srv.URL)

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetExhaustsRetriesOnPersistentFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(t, srv, 3)
	_, err := c.get(context.Background(), "test", srv.URL)

	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.Transient)
	assert.Equal(t, 3, pe.Attempts)
	assert.True(t, IsTransient(err))
}

func TestGetDoesNotRetryPermanentFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := testClient(t, srv, 3)
	_, err := c.get(context.Background(), "test", srv.URL)

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.False(t, pe.Transient)
	assert.False(t, IsTransient(err))
}

func TestGetRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(t, srv, 3)
	_, err := c.get(context.Background(), "test", srv.URL)

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetRetriesWithSubNanosecondJitterRange(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	// A 1ns base delay halves to a zero jitter range; the retry loop must
	// not panic on it.
	c := NewClient(srv.URL, 5*time.Second, 3, time.Nanosecond,
		WithHTTPClient(srv.Client()))

	_, err := c.get(context.Background(), "test", srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetCancelledBetweenAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	// Long backoff so cancellation wins the race against the timer.
	c := NewClient(srv.URL, 5*time.Second, 5, 10*time.Second,
		WithHTTPClient(srv.Client()))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := c.get(ctx, "test", srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second)
}

type fakeCache struct {
	store map[string][]byte
	gets  int
	sets  int
}

func newFakeCache() *fakeCache { return &fakeCache{store: make(map[string][]byte)} }

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	f.gets++
	b, ok := f.store[key]
	return b, ok
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte) {
	f.sets++
	f.store[key] = value
}

func TestGetJSONReadsThroughCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"events":[]}`))
	}))
	defer srv.Close()

	cache := newFakeCache()
	c := NewClient(srv.URL, 5*time.Second, 3, 2*time.Millisecond,
		WithHTTPClient(srv.Client()), WithCache(cache))

	var out scoreboardResponse
	require.NoError(t, c.getJSON(context.Background(), "test", srv.URL, &out))
	require.NoError(t, c.getJSON(context.Background(), "test", srv.URL, &out))

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 2, cache.gets)
}

func TestWeekSelectorSeasonTypeMapping(t *testing.T) {
	tests := []struct {
		weekNumber int
		seasonType int
		week       int
	}{
		{1, 2, 1},
		{18, 2, 18},
		{19, 3, 1},  // Wild Card
		{20, 3, 2},  // Divisional
		{21, 3, 3},  // Conference Championship
		{22, 3, 4},  // Pro Bowl
		{23, 3, 5},  // Super Bowl
	}

	for _, tt := range tests {
		sel := WeekSelector{SeasonYear: 2025, WeekNumber: tt.weekNumber}
		seasonType, week := sel.seasonTypeAndWeek()
		assert.Equal(t, tt.seasonType, seasonType, "week %d", tt.weekNumber)
		assert.Equal(t, tt.week, week, "week %d", tt.weekNumber)
	}
}
