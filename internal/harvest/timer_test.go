package harvest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimer_NotReadyBeforeDuration(t *testing.T) {
	start := time.Now()
	timer := &Timer{duration: time.Minute, lastHarvest: start}

	assert.False(t, timer.Ready(start.Add(30*time.Second), false))
}

func TestTimer_ReadyAtDuration(t *testing.T) {
	start := time.Now()
	timer := &Timer{duration: time.Minute, lastHarvest: start}

	now := start.Add(time.Minute)
	assert.True(t, timer.Ready(now, false))
	assert.Equal(t, now, timer.lastHarvest)
}

func TestTimer_ForceFiresEarlyAndResetsLastHarvest(t *testing.T) {
	start := time.Now()
	timer := &Timer{duration: time.Minute, lastHarvest: start}

	now := start.Add(time.Second)
	assert.True(t, timer.Ready(now, true))
	assert.Equal(t, now, timer.lastHarvest)

	assert.False(t, timer.Ready(now.Add(time.Second), false))
}
