// Package provider is the external data client: it fetches NFL
// schedule/score/odds data from the ESPN scoreboard API with bounded
// retries and normalizes the payloads into canonical records.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/metrics"
)

// WeekSelector addresses one week of one season. Internal week numbers
// 19-23 address postseason rounds.
type WeekSelector struct {
	SeasonYear int
	WeekNumber int
}

// seasonTypeAndWeek maps the internal week number onto the provider's
// (seasontype, week) pair: regular season is type 2 weeks 1-18, the
// postseason is type 3 weeks 1-5.
func (s WeekSelector) seasonTypeAndWeek() (seasonType, week int) {
	if s.WeekNumber >= 19 {
		return 3, s.WeekNumber - 18
	}
	return 2, s.WeekNumber
}

func (s WeekSelector) String() string {
	return fmt.Sprintf("%d-W%d", s.SeasonYear, s.WeekNumber)
}

// Cache is the optional read-through snapshot cache for raw payloads.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// Client is the ESPN scoreboard API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	cache      Cache
	rnd        *rand.Rand
}

// Option configures a Client.
type Option func(*Client)

// WithCache attaches a snapshot cache consulted before the network.
func WithCache(c Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.httpClient = h }
}

// NewClient creates a provider client. retries is the total attempt
// budget per request; retryDelay seeds the exponential backoff.
func NewClient(baseURL string, timeout time.Duration, retries int, retryDelay time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		maxRetries: retries,
		retryDelay: retryDelay,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET with retry and exponential backoff plus jitter.
// Backoff sleeps are cancellable: a cancelled ctx aborts between attempts
// and the partial retry state is discarded.
func (c *Client) get(ctx context.Context, op, url string) ([]byte, error) {
	var lastErr error
	attempts := 0

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			if half := int64(c.retryDelay) / 2; half > 0 {
				backoff += time.Duration(c.rnd.Int63n(half))
			}
			metrics.RecordProviderRetry()
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying provider request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
		attempts++

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &Error{Op: op, Err: err}
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "nfl-picks/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", readErr)
			continue
		}

		metrics.RecordProviderRequest(op, resp.StatusCode)

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil

		case resp.StatusCode == http.StatusTooManyRequests,
			resp.StatusCode >= http.StatusInternalServerError:
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body))
			continue

		default:
			// Other 4xx are not retryable.
			return nil, &Error{Op: op, Transient: false, Attempts: attempts,
				Err: fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body))}
		}
	}

	return nil, &Error{Op: op, Transient: true, Attempts: attempts, Err: lastErr}
}

// getJSON fetches and decodes, going through the snapshot cache when one
// is attached. A cache hit is a superseding snapshot like any fetch.
func (c *Client) getJSON(ctx context.Context, op, url string, v any) error {
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, url); ok {
			if err := json.Unmarshal(body, v); err == nil {
				return nil
			}
			// A corrupt cached payload falls through to the network.
		}
	}

	body, err := c.get(ctx, op, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("unrecognized payload: %w", err)}
	}

	if c.cache != nil {
		c.cache.Set(ctx, url, body)
	}
	return nil
}

// IsTransient reports whether err is a provider error that exhausted its
// retries on transient failures.
func IsTransient(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Transient
}

func truncate(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
