package aggregate

import (
	"github.com/newrelic/go-apm-agent/internal/limits"
	"github.com/newrelic/go-apm-agent/internal/wire"
)

// TraceRing is a bounded FIFO of transaction traces; pushing past capacity
// drops the oldest trace.
type TraceRing struct {
	capacity int
	traces   []wire.TransactionTrace
}

// NewTraceRing returns an empty ring with the given capacity.
func NewTraceRing(capacity int) *TraceRing {
	return &TraceRing{
		capacity: capacity,
		traces:   make([]wire.TransactionTrace, 0, capacity),
	}
}

// NewRegularTraceRing returns a ring sized to limits.MaxRegularTraces.
func NewRegularTraceRing() *TraceRing {
	return NewTraceRing(limits.MaxRegularTraces)
}

// Len reports the number of traces currently held.
func (r *TraceRing) Len() int {
	return len(r.traces)
}

// Traces returns a copy of the traces currently held, oldest first.
func (r *TraceRing) Traces() []wire.TransactionTrace {
	traces := make([]wire.TransactionTrace, len(r.traces))
	copy(traces, r.traces)
	return traces
}

// Push appends a trace, dropping the oldest entry first if the ring is full.
func (r *TraceRing) Push(t wire.TransactionTrace) {
	if r.capacity <= 0 {
		return
	}
	if len(r.traces) >= r.capacity {
		r.traces = r.traces[1:]
	}
	r.traces = append(r.traces, t)
}

// PrependBounded inserts traces ahead of the current ring, used to merge an
// unsent snapshot back in after a should-save-harvest-data classified
// shipment error. Overflow beyond capacity drops the oldest entries.
func (r *TraceRing) PrependBounded(traces []wire.TransactionTrace) {
	merged := append(append([]wire.TransactionTrace{}, traces...), r.traces...)
	if len(merged) > r.capacity {
		merged = merged[len(merged)-r.capacity:]
	}
	r.traces = merged
}

// Payload snapshots the ring into the transaction_sample_data wire shape.
// An empty ring yields an empty Traces slice so callers can skip the RPC.
func (r *TraceRing) Payload(agentRunID string) wire.TransactionSampleDataPayload {
	traces := make([]wire.TransactionTrace, len(r.traces))
	copy(traces, r.traces)
	return wire.TransactionSampleDataPayload{
		AgentRunID: agentRunID,
		Traces:     traces,
	}
}
