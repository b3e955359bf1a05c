package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		code string
		ok   bool
	}{
		{"Kansas City Chiefs", "KC", true},
		{"KC", "KC", true},
		{"kc", "KC", true},
		{"Chiefs", "KC", true},
		{"  Pittsburgh Steelers ", "PIT", true},
		{"Niners", "SF", true},
		{"SFO", "SF", true},
		{"WAS", "WSH", true},
		{"JAC", "JAX", true},
		{"Philly", "PHI", true},

		{"NFC", "", false},
		{"AFC", "", false},
		{"TBD", "", false},
		{"", "", false},
		{"London Monarchs", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			code, ok := Resolve(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestResolveAllCodesRoundTrip(t *testing.T) {
	assert.Len(t, all, 32)
	for _, team := range all {
		code, ok := Resolve(team.Code)
		assert.True(t, ok, team.Code)
		assert.Equal(t, team.Code, code)

		code, ok = Resolve(team.DisplayName())
		assert.True(t, ok, team.DisplayName())
		assert.Equal(t, team.Code, code)
	}
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder("NFC"))
	assert.True(t, IsPlaceholder("afc"))
	assert.True(t, IsPlaceholder(" tbd "))
	assert.False(t, IsPlaceholder("KC"))
}
