// Package agent is the public entry point: construct an Agent from a
// validated Config, start transactions against it, and shut it down when
// the embedding program exits.
package agent

import (
	"time"

	"github.com/tevino/abool"

	"github.com/newrelic/go-apm-agent/internal/runtime"
	"github.com/newrelic/go-apm-agent/pkg/config"
)

// Agent is a handle to one background harvester goroutine. It is safe for
// concurrent use by any number of goroutines calling StartTransaction.
type Agent struct {
	rt           *runtime.Runtime
	shuttingDown *abool.AtomicBool
}

// New validates cfg and, if enabled, starts the background runtime
// goroutine. A disabled config returns a handle whose methods are all
// no-ops. Validation failures are returned synchronously; the background
// goroutine never starts on error.
func New(cfg config.Config) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Agent{shuttingDown: abool.New()}
	if !cfg.Enabled {
		return a, nil
	}

	a.rt = runtime.New(cfg)
	a.rt.Start()
	return a, nil
}

// StartTransaction begins timing a transaction named name. Call End on the
// returned Transaction when it completes. On a disabled agent, the
// returned Transaction's End is a no-op.
func (a *Agent) StartTransaction(name string, isWeb bool) *Transaction {
	return &Transaction{
		agent: a,
		name:  name,
		isWeb: isWeb,
		start: time.Now(),
	}
}

// Shutdown stops the background goroutine, makes a best-effort final
// flush, and waits for it to exit. Calling it more than once is a safe
// no-op; only the first call has any effect.
func (a *Agent) Shutdown() {
	if !a.shuttingDown.SetToIf(false, true) {
		return
	}
	if a.rt != nil {
		a.rt.Shutdown()
	}
}

// Transaction is the façade an embedder times one unit of work with. Go
// has no destructors, so unlike the reference implementation's Drop-based
// finalization, End must be called explicitly (typically via defer).
type Transaction struct {
	agent      *Agent
	name       string
	isWeb      bool
	start      time.Time
	webRequest *runtime.WebRequest
	ended      bool
}

// SetWebRequest attaches the request facts recorded as agent attributes
// when the transaction ends. It has no effect once End has been called.
func (t *Transaction) SetWebRequest(method, uri, host string) {
	if t.ended {
		return
	}
	t.webRequest = &runtime.WebRequest{Method: method, URI: uri, Host: host}
}

// End records the transaction's duration. Only the first call records;
// subsequent calls are no-ops.
func (t *Transaction) End() {
	if t.ended {
		return
	}
	t.ended = true
	if t.agent.rt == nil {
		return
	}
	t.agent.rt.OnTransactionEnd(t.name, t.isWeb, t.start, time.Now(), t.webRequest)
}
