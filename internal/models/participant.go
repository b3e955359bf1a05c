package models

import "time"

// Participant is a competitor keyed by an externally issued chat identifier.
type Participant struct {
	ID        int64     `db:"id"`
	ChatID    int64     `db:"chat_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
