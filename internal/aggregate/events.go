package aggregate

import (
	"math/rand"

	"github.com/newrelic/go-apm-agent/internal/limits"
	"github.com/newrelic/go-apm-agent/internal/wire"
)

// EventReservoir is a bounded, uniformly-sampled buffer of analytics events.
// Capacity is reported to the collector separately from eventsSeen, the true
// count of events observed since the reservoir was created.
type EventReservoir struct {
	capacity   int
	eventsSeen int
	sample     []wire.AnalyticsEventWithAttrs
	rng        *rand.Rand
}

// NewEventReservoir returns an empty reservoir with the given capacity.
func NewEventReservoir(capacity int) *EventReservoir {
	return &EventReservoir{
		capacity: capacity,
		sample:   make([]wire.AnalyticsEventWithAttrs, 0, capacity),
		rng:      rand.New(rand.NewSource(rand.Int63())),
	}
}

// NewTxnEventReservoir returns a reservoir sized to limits.MaxTxnEvents.
func NewTxnEventReservoir() *EventReservoir {
	return NewEventReservoir(limits.MaxTxnEvents)
}

// Len reports the number of events currently held in the sample.
func (r *EventReservoir) Len() int {
	return len(r.sample)
}

// EventsSeen reports the true count of events observed since creation,
// independent of how many survived sampling.
func (r *EventReservoir) EventsSeen() int {
	return r.eventsSeen
}

// Add records one more observed event, applying Algorithm R reservoir
// sampling once the sample is at capacity: the first `capacity` events are
// kept unconditionally; thereafter the k-th event (1-indexed by
// eventsSeen) replaces a uniformly random existing slot with probability
// capacity/k.
func (r *EventReservoir) Add(e wire.AnalyticsEventWithAttrs) {
	r.eventsSeen++
	if len(r.sample) < r.capacity {
		r.sample = append(r.sample, e)
		return
	}
	if r.capacity <= 0 {
		return
	}
	j := r.rng.Intn(r.eventsSeen)
	if j < r.capacity {
		r.sample[j] = e
	}
}

// PrependBounded inserts events ahead of the current sample, used to merge
// an unsent snapshot back in after a should-save-harvest-data classified
// shipment error. Overflow beyond capacity is dropped from the tail.
func (r *EventReservoir) PrependBounded(events []wire.AnalyticsEventWithAttrs, eventsSeen int) {
	merged := append(append([]wire.AnalyticsEventWithAttrs{}, events...), r.sample...)
	if len(merged) > r.capacity {
		merged = merged[:r.capacity]
	}
	r.sample = merged
	r.eventsSeen += eventsSeen
}

// Payload snapshots the reservoir into the analytic_event_data wire shape.
func (r *EventReservoir) Payload(agentRunID string) wire.AnalyticsEventDataPayload {
	events := make([]wire.AnalyticsEventWithAttrs, len(r.sample))
	copy(events, r.sample)
	return wire.AnalyticsEventDataPayload{
		AgentRunID: agentRunID,
		Properties: wire.ReservoirProperties{
			ReservoirSize: r.capacity,
			EventsSeen:    r.eventsSeen,
		},
		Events: events,
	}
}
