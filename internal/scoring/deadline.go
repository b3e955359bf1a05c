package scoring

import "time"

// AcceptsPick decides whether a pick submission arriving at now is still
// open for a game kicking off at kickoff. The interval is open: a
// submission in the same instant as kickoff is rejected, and there is no
// grace period. Both arguments must be UTC instants from the clock service.
func AcceptsPick(kickoff, now time.Time) bool {
	return now.Before(kickoff)
}
