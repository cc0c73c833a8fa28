package runtime

import (
	"github.com/newrelic/go-apm-agent/internal/apprun"
	"github.com/newrelic/go-apm-agent/internal/harvest"
)

// appState is the three-way tagged union the runtime's mutex guards.
// Exactly three states exist and every transition is total, so it is
// modeled as an interface with unexported implementations matched by type
// assertion rather than an enum-plus-fields struct.
type appState interface {
	isAppState()
}

// stateInit is the state before the first successful handshake.
type stateInit struct{}

func (stateInit) isAppState() {}

// stateRunning holds the live AppRun and its harvest buffer.
type stateRunning struct {
	run     *apprun.AppRun
	harvest *harvest.Buffer
}

func (stateRunning) isAppState() {}

// stateDead is terminal; ingest calls against it are silently dropped.
type stateDead struct{}

func (stateDead) isAppState() {}
