package harvest

import (
	"time"

	"github.com/newrelic/go-apm-agent/internal/aggregate"
	"github.com/newrelic/go-apm-agent/internal/apprun"
)

const instanceReportingMetric = "Instance/Reporting"

// Buffer is the per-session container: the three aggregators plus the five
// period timers. It is exclusively owned by whoever holds the agent
// runtime's state lock.
type Buffer struct {
	metricsTracesTimer *Timer
	spanEventsTimer    *Timer
	customEventsTimer  *Timer
	txnEventsTimer     *Timer
	errorEventsTimer   *Timer

	Metrics *aggregate.MetricTable
	Events  *aggregate.EventReservoir
	Traces  *aggregate.TraceRing
}

// New builds a fresh Buffer whose timers are seeded from run's periods.
func New(run *apprun.AppRun) *Buffer {
	return &Buffer{
		metricsTracesTimer: NewTimer(run.MetricsTracesPeriod),
		spanEventsTimer:    NewTimer(run.SpanEventsPeriod),
		customEventsTimer:  NewTimer(run.CustomEventsPeriod),
		txnEventsTimer:     NewTimer(run.TxnEventsPeriod),
		errorEventsTimer:   NewTimer(run.ErrorEventsPeriod),

		Metrics: aggregate.NewMetricTable(),
		Events:  aggregate.NewTxnEventReservoir(),
		Traces:  aggregate.NewRegularTraceRing(),
	}
}

// Ready checks each timer against now and swaps out the aggregators of
// every due class, replacing them in-place with fresh ones. Metrics and
// traces share the fixed metrics_traces cadence. The span/custom/error
// event classes have no backing aggregator in this implementation (their
// pipelines are a declared non-goal beyond buffer shape) so only their
// timers are advanced, for parity with the wire protocol's five-class
// model.
func (b *Buffer) Ready(now time.Time, force bool) *Ready {
	ready := &Ready{}

	if b.metricsTracesTimer.Ready(now, force) {
		b.Metrics.AddCount(instanceReportingMetric, "", 1, true)
		ready.Metrics = b.Metrics
		ready.Traces = b.Traces
		b.Metrics = aggregate.NewMetricTable()
		b.Traces = aggregate.NewRegularTraceRing()
	}

	if b.txnEventsTimer.Ready(now, force) {
		ready.Events = b.Events
		b.Events = aggregate.NewTxnEventReservoir()
	}

	b.spanEventsTimer.Ready(now, force)
	b.customEventsTimer.Ready(now, force)
	b.errorEventsTimer.Ready(now, force)

	return ready
}

// MergeBack reinstates an unsent snapshot into this buffer's matching
// aggregator, used when a shipment error is classified save-harvest-data.
func (b *Buffer) MergeBack(unsent *Ready) {
	if unsent == nil {
		return
	}
	if unsent.Metrics != nil {
		b.Metrics.Merge(unsent.Metrics)
	}
	if unsent.Traces != nil && unsent.Traces.Len() > 0 {
		b.Traces.PrependBounded(unsent.Traces.Traces())
	}
	if unsent.Events != nil && unsent.Events.Len() > 0 {
		payload := unsent.Events.Payload("")
		b.Events.PrependBounded(payload.Events, unsent.Events.EventsSeen())
	}
}
