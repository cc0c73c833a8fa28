// Package limits centralizes the wire-protocol and buffer-size constants
// fixed by protocol version 17.
package limits

import "time"

const (
	// FixedHarvestPeriod is the cadence for the metrics/traces harvest class,
	// which is never subject to server-side configuration.
	FixedHarvestPeriod = 60 * time.Second

	// DefaultConfigurableEventHarvest is the period used for the
	// server-configurable event classes when the connect reply omits
	// report_period_ms.
	DefaultConfigurableEventHarvest = 60 * time.Second

	// DefaultReportPeriodMS mirrors DefaultConfigurableEventHarvest in the
	// units the wire protocol uses.
	DefaultReportPeriodMS = 60_000

	// MaxMetrics bounds the metric table; the Supportability/MetricsDropped
	// forced key does not count against it.
	MaxMetrics = 2000

	// MaxPayloadSize is the gzip-compressed body size ceiling enforced
	// before every RPC.
	MaxPayloadSize = 1_000_000

	// MaxTxnEvents is both the analytics event reservoir capacity and the
	// event_harvest_config analytic_event_data limit requested at connect.
	MaxTxnEvents = 10_000

	// MaxCustomEvents is requested at connect even though the custom-event
	// pipeline itself is a declared non-goal beyond its buffer shape.
	MaxCustomEvents = 10_000

	// MaxErrorEvents is requested at connect even though the error-event
	// pipeline itself is a declared non-goal beyond its buffer shape.
	MaxErrorEvents = 100

	// MaxRegularTraces bounds the transaction-trace ring. The distilled
	// source never pinned a concrete value; one slowest trace per harvest
	// matches how the reference vendor's agents behave without a
	// server-assigned trace-collection tier.
	MaxRegularTraces = 1

	// TraceDurationThreshold is the minimum transaction duration that
	// produces a trace when transaction_tracer.enabled is true.
	TraceDurationThreshold = 500 * time.Millisecond

	// RPCTimeout bounds every Collector Client round trip.
	RPCTimeout = 20 * time.Second

	// ProtocolVersion is the collector wire protocol version this agent speaks.
	ProtocolVersion = 17
)
