package provider

import "fmt"

// Error is the provider failure surfaced to callers. Transient failures
// (timeouts, 5xx, rate limits) are retried internally and only reach the
// caller after retries are exhausted; permanent failures (other 4xx,
// unrecognizable payloads) surface immediately.
type Error struct {
	Op        string
	Transient bool
	Attempts  int
	Err       error
}

func (e *Error) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = fmt.Sprintf("transient, %d attempts", e.Attempts)
	}
	return fmt.Sprintf("provider %s failed (%s): %v", e.Op, kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
