package runtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShutdown_SleepRunsFullDurationWhenNotFired(t *testing.T) {
	s := NewShutdown()
	start := time.Now()
	ranFull := s.Sleep(30 * time.Millisecond)
	assert.True(t, ranFull)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestShutdown_SleepCutShortByFire(t *testing.T) {
	s := NewShutdown()
	go func() {
		time.Sleep(5 * time.Millisecond)
		s.Fire()
	}()
	start := time.Now()
	ranFull := s.Sleep(time.Second)
	assert.False(t, ranFull)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestShutdown_SleepAfterFireReturnsImmediately(t *testing.T) {
	s := NewShutdown()
	s.Fire()
	start := time.Now()
	ranFull := s.Sleep(time.Second)
	assert.False(t, ranFull)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestShutdown_FireIsIdempotent(t *testing.T) {
	s := NewShutdown()
	assert.NotPanics(t, func() {
		s.Fire()
		s.Fire()
	})
	assert.True(t, s.Fired())
}
