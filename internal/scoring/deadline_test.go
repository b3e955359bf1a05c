package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcceptsPick(t *testing.T) {
	kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"one second before kickoff", kickoff.Add(-time.Second), true},
		{"exactly at kickoff", kickoff, false},
		{"one second after kickoff", kickoff.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AcceptsPick(kickoff, tt.now))
		})
	}
}
