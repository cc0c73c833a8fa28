package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newrelic/go-apm-agent/pkg/config"
)

func TestNew_DisabledConfigSkipsRuntime(t *testing.T) {
	a, err := New(config.Config{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, a.rt)

	txn := a.StartTransaction("test", false)
	assert.NotPanics(t, txn.End)

	assert.NotPanics(t, a.Shutdown)
}

func TestNew_InvalidConfigReturnsErrorWithoutStartingRuntime(t *testing.T) {
	a, err := New(config.Config{Enabled: true, License: "too-short"})
	require.Error(t, err)
	assert.Nil(t, a)
}

func TestAgent_ShutdownIsIdempotent(t *testing.T) {
	a, err := New(config.Config{Enabled: false})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		a.Shutdown()
		a.Shutdown()
	})
}

func TestTransaction_EndIsIdempotent(t *testing.T) {
	a, err := New(config.Config{Enabled: false})
	require.NoError(t, err)

	txn := a.StartTransaction("test", false)
	txn.End()
	assert.NotPanics(t, txn.End)
}
