// Package runtime owns the background harvester goroutine: the connect/
// reconnect loop, the per-second session loop, and the ingest entry point
// transactions call into.
package runtime

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/newrelic/go-apm-agent/internal/apdex"
	"github.com/newrelic/go-apm-agent/internal/apprun"
	"github.com/newrelic/go-apm-agent/internal/collector"
	"github.com/newrelic/go-apm-agent/internal/handshake"
	"github.com/newrelic/go-apm-agent/internal/harvest"
	"github.com/newrelic/go-apm-agent/internal/limits"
	"github.com/newrelic/go-apm-agent/internal/wire"
	"github.com/newrelic/go-apm-agent/pkg/backend/backoff"
	"github.com/newrelic/go-apm-agent/pkg/config"
	"github.com/newrelic/go-apm-agent/pkg/helpers/recover"
	"github.com/newrelic/go-apm-agent/pkg/log"
)

var rlog = log.WithComponent("runtime")

// WebRequest carries the handful of request facts an ingested web
// transaction attaches as agent attributes.
type WebRequest struct {
	Method string
	URI    string
	Host   string
}

// Runtime owns the immutable config, the mutex-protected AppState, and the
// Shutdown coordinator. One Runtime runs exactly one background goroutine.
type Runtime struct {
	cfg      config.Config
	client   *collector.Client
	shutdown *Shutdown

	mu    sync.Mutex
	state appState

	wg sync.WaitGroup
}

// New constructs a Runtime in the Init state. Callers must call Start to
// launch the background goroutine.
func New(cfg config.Config) *Runtime {
	return &Runtime{
		cfg:      cfg,
		client:   collector.NewClient(cfg.License),
		shutdown: NewShutdown(),
		state:    stateInit{},
	}
}

// Start launches the background runtime goroutine. It returns immediately.
func (r *Runtime) Start() {
	r.wg.Add(1)
	go recover.FuncWithPanicHandler(recover.LogAndContinue, r.run)
}

// Shutdown signals the background goroutine to stop, makes a best-effort
// final flush, and waits for it to exit. Calling it more than once is a
// safe no-op (the underlying Shutdown coordinator is idempotent).
func (r *Runtime) Shutdown() {
	r.shutdown.Fire()
	r.wg.Wait()
}

// run is the top-level state machine: connect, run the session loop until
// it returns a terminating error, then back off and retry unless the
// error was a disconnect. A handshake error always backs off before
// retrying, even a 401/409, since the immediate-reconnect carve-out only
// applies to a restart-exception raised against an already-established
// session (see isRestartException's use below).
func (r *Runtime) run() {
	defer r.wg.Done()

	b := backoff.New()
	for {
		run, err := r.connectAttempt(context.Background())
		if err != nil {
			if isDisconnect(err) {
				break
			}
			delay := b.Duration()
			b.Next()
			if !r.shutdown.Sleep(delay) {
				break
			}
			continue
		}

		b.Reset()
		sessionErr := r.runSession(run)
		if isDisconnect(sessionErr) {
			break
		}
		if isRestartException(sessionErr) {
			// Reconnect immediately; the attempt counter was already
			// reset by the b.Reset() above.
			continue
		}
		if !r.shutdown.Sleep(b.Duration()) {
			break
		}
	}

	r.finalFlush()
}

func (r *Runtime) connectAttempt(ctx context.Context) (*apprun.AppRun, error) {
	run, err := handshake.Connect(ctx, r.cfg, r.client)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.state = stateRunning{run: run, harvest: harvest.New(run)}
	r.mu.Unlock()

	return run, nil
}

// runSession drives the per-second snapshot-and-ship loop until shutdown
// fires or a shipment error terminates the session.
func (r *Runtime) runSession(run *apprun.AppRun) error {
	for {
		if !r.shutdown.Sleep(time.Second) {
			return &collector.Error{Kind: collector.Shutdown}
		}

		ready, ok := r.snapshot(false)
		if !ok {
			return nil
		}

		err := ready.Ship(context.Background(), r.client, run)
		if err == nil {
			continue
		}

		if isFatalSessionError(err) {
			return err
		}
		if ready.ShouldSaveHarvestData(err) {
			r.mergeBack(ready)
		}
		rlog.WithError(err).Warn("harvest shipment reported non-fatal errors")
	}
}

// snapshot takes the state lock just long enough to read the Running
// discriminant and swap due aggregators out; it never performs I/O while
// held. ok is false once the state has left Running (restart or
// shutdown raced ahead of this goroutine).
func (r *Runtime) snapshot(force bool) (*harvest.Ready, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	running, ok := r.state.(stateRunning)
	if !ok {
		return nil, false
	}
	return running.harvest.Ready(time.Now(), force), true
}

func (r *Runtime) mergeBack(unsent *harvest.Ready) {
	r.mu.Lock()
	defer r.mu.Unlock()

	running, ok := r.state.(stateRunning)
	if !ok {
		return
	}
	running.harvest.MergeBack(unsent)
}

// finalFlush takes the lock, moves the buffer out of Running, and ships a
// forced final harvest outside the lock. Errors are logged and swallowed:
// this is a best-effort flush, not a retried one.
func (r *Runtime) finalFlush() {
	r.mu.Lock()
	running, ok := r.state.(stateRunning)
	r.state = stateDead{}
	r.mu.Unlock()

	if !ok {
		return
	}

	ready := running.harvest.Ready(time.Now(), true)
	ctx, cancel := context.WithTimeout(context.Background(), limits.RPCTimeout)
	defer cancel()
	if err := ready.Ship(ctx, r.client, running.run); err != nil {
		rlog.WithError(err).Warn("final harvest flush reported errors")
	}
}

func isDisconnect(err error) bool {
	ce, ok := err.(*collector.Error)
	return ok && ce.IsDisconnect()
}

func isFatalSessionError(err error) bool {
	ce, ok := err.(*collector.Error)
	return ok && (ce.IsDisconnect() || ce.IsRestartException())
}

func isRestartException(err error) bool {
	ce, ok := err.(*collector.Error)
	return ok && ce.IsRestartException()
}

// OnTransactionEnd is the sole ingest entry point. It is a no-op unless
// the runtime is Running: metric writes, event sampling, and trace
// capture all happen under the state lock, but they never block on I/O,
// so ingest latency is bounded by aggregator-update cost alone.
func (r *Runtime) OnTransactionEnd(name string, isWeb bool, start, end time.Time, webRequest *WebRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()

	running, ok := r.state.(stateRunning)
	if !ok {
		return
	}

	d := end.Sub(start)
	n := strings.TrimPrefix(name, "/")

	prefix := "OtherTransaction"
	if isWeb {
		prefix = "WebTransaction"
	}
	finalName := prefix + "/Go/" + n
	tail := "Go/" + n

	metrics := running.harvest.Metrics
	metrics.AddDuration(finalName, "", d.Seconds(), 0, true)
	if isWeb {
		metrics.AddDuration("WebTransaction", "", d.Seconds(), 0, true)
		metrics.AddDuration("HttpDispatcher", "", d.Seconds(), 0, true)
	} else {
		metrics.AddDuration("OtherTransaction/all", "", d.Seconds(), 0, true)
	}
	metrics.AddDuration(prefix+"TotalTime/"+tail, "", d.Seconds(), d.Seconds(), false)
	metrics.AddDuration(prefix+"TotalTime", "", d.Seconds(), d.Seconds(), true)

	event := wire.TransactionEvent{
		Name:      finalName,
		Type:      "Transaction",
		Timestamp: end.Unix(),
		Duration:  d.Seconds(),
		TotalTime: d.Seconds(),
		Error:     false,
	}
	if isWeb {
		event.ApdexPerfZone = apdex.Calculate(running.run.ApdexT, d).String()
	}

	var agentAttrs map[string]interface{}
	if webRequest != nil {
		agentAttrs = map[string]interface{}{
			"request.method":       webRequest.Method,
			"request.uri":          webRequest.URI,
			"request.headers.host": webRequest.Host,
		}
	}
	running.harvest.Events.Add(wire.AnalyticsEventWithAttrs{
		Event:      event,
		AgentAttrs: agentAttrs,
	})

	if r.cfg.TransactionTracer.Enabled && d >= limits.TraceDurationThreshold {
		running.harvest.Traces.Push(buildTrace(finalName, start, d, webRequest))
	}
}

func buildTrace(finalName string, start time.Time, d time.Duration, webRequest *WebRequest) wire.TransactionTrace {
	durationMillis := float64(d) / float64(time.Millisecond)

	var requestURI *string
	if webRequest != nil && webRequest.URI != "" {
		uri := webRequest.URI
		requestURI = &uri
	}

	return wire.TransactionTrace{
		StartMicros:    start.UnixMicro(),
		DurationMillis: durationMillis,
		FinalName:      finalName,
		RequestURI:     requestURI,
		Data: wire.TraceData{
			Root: wire.Node{
				RelativeStartMillis: 0,
				RelativeStopMillis:  int64(durationMillis),
				Name:                finalName,
				Attrs:               wire.NodeAttrs{ExclusiveDurationMillis: &durationMillis},
			},
			Properties: wire.TraceProperties{
				AgentAttributes: map[string]interface{}{},
				UserAttributes:  map[string]interface{}{},
				Intrinsics:      wire.Intrinsics{TotalTime: d.Seconds()},
			},
		},
		CatGUID: uuid.NewString(),
	}
}
