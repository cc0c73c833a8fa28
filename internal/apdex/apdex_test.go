package apdex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculate_Zones(t *testing.T) {
	threshold := 500 * time.Millisecond

	cases := []struct {
		name     string
		duration time.Duration
		want     Zone
	}{
		{"under threshold", 100 * time.Millisecond, Satisfying},
		{"just under threshold", threshold - time.Millisecond, Satisfying},
		{"at threshold", threshold, Tolerating},
		{"just under 4x", 4*threshold - time.Millisecond, Tolerating},
		{"at 4x", 4 * threshold, Failing},
		{"well over", 10 * time.Second, Failing},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Calculate(threshold, c.duration))
		})
	}
}

func TestZone_String(t *testing.T) {
	assert.Equal(t, "S", Satisfying.String())
	assert.Equal(t, "T", Tolerating.String())
	assert.Equal(t, "F", Failing.String())
}
