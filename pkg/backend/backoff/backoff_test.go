// Copyright 2020 New Relic Corporation. All rights reserved.
// SPDX-License-Identifier: Apache-2.0
package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestForAttempt_MatchesFixedTable(t *testing.T) {
	expected := []time.Duration{
		15 * time.Second,
		15 * time.Second,
		30 * time.Second,
		60 * time.Second,
		120 * time.Second,
		300 * time.Second,
	}
	for n, want := range expected {
		assert.Equal(t, want, ForAttempt(n))
	}
}

func TestForAttempt_ClampsPastTableEnd(t *testing.T) {
	assert.Equal(t, 300*time.Second, ForAttempt(6))
	assert.Equal(t, 300*time.Second, ForAttempt(1000))
}

func TestForAttempt_ClampsNegative(t *testing.T) {
	assert.Equal(t, 15*time.Second, ForAttempt(-1))
}

func TestBackoff_NextAdvancesAndSaturates(t *testing.T) {
	b := New()
	assert.Equal(t, 15*time.Second, b.Duration())

	b.Next()
	assert.Equal(t, 15*time.Second, b.Duration())

	b.Next()
	assert.Equal(t, 30*time.Second, b.Duration())

	for i := 0; i < 10; i++ {
		b.Next()
	}
	assert.Equal(t, 300*time.Second, b.Duration())
}

func TestBackoff_Reset(t *testing.T) {
	b := New()
	b.Next()
	b.Next()
	assert.Equal(t, 2, b.Attempt())

	b.Reset()
	assert.Equal(t, 0, b.Attempt())
	assert.Equal(t, 15*time.Second, b.Duration())
}
