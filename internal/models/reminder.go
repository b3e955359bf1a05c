package models

import "time"

// Reminder kinds.
const (
	ReminderPicksOpen    = "picks_open"
	ReminderDeadlineSoon = "deadline_soon"
	ReminderWeekResults  = "week_results"
)

// Reminder records that a notification of a given kind was already sent
// for a (participant, ref) pair, making sends at-most-once per kind.
// RefID points at a week or game depending on the kind.
type Reminder struct {
	ID            int64     `db:"id"`
	Kind          string    `db:"kind"`
	ParticipantID int64     `db:"participant_id"`
	RefID         int64     `db:"ref_id"`
	SentAt        time.Time `db:"sent_at"`
}
