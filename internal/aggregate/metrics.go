// Package aggregate implements the three bounded accumulators fed by the
// ingest path and drained by the harvest scheduler: a metric table, an
// event reservoir, and a transaction-trace ring.
package aggregate

import (
	"math"
	"time"

	"github.com/newrelic/go-apm-agent/internal/limits"
	"github.com/newrelic/go-apm-agent/internal/wire"
)

const metricsDroppedName = "Supportability/MetricsDropped"

// MetricTable maps (name, scope) to the accumulated 6-tuple, bounded at
// limits.MaxMetrics keys plus the always-forced MetricsDropped key.
type MetricTable struct {
	created time.Time
	data    map[wire.MetricID]*wire.MetricValue
}

// NewMetricTable returns an empty table stamped with its creation time,
// used to compute period_start on Payload.
func NewMetricTable() *MetricTable {
	return &MetricTable{
		created: time.Now(),
		data:    make(map[wire.MetricID]*wire.MetricValue),
	}
}

// Len reports the number of distinct metric identities currently held.
func (t *MetricTable) Len() int {
	return len(t.data)
}

// AddCount records a plain counter: writes (count, 0, 0, 0, 0, 0) merged
// into the existing value at (name, scope).
func (t *MetricTable) AddCount(name, scope string, count float64, forced bool) {
	t.merge(wire.MetricID{Name: name, Scope: scope}, wire.MetricValue{
		CountSatisfied: count,
	}, forced)
}

// AddDuration records a timing sample: writes
// (1, duration, exclusive, duration, duration, duration^2) merged into the
// existing value at (name, scope). duration and exclusive are in seconds.
func (t *MetricTable) AddDuration(name, scope string, duration, exclusive float64, forced bool) {
	t.merge(wire.MetricID{Name: name, Scope: scope}, wire.MetricValue{
		CountSatisfied:  1,
		TotalTolerated:  duration,
		ExclusiveFailed: exclusive,
		Min:             duration,
		Max:             duration,
		SumSquares:      duration * duration,
	}, forced)
}

// merge combines value into the entry at id, creating it if absent. New
// keys beyond MaxMetrics are suppressed unless forced, and every
// suppression bumps the always-forced MetricsDropped counter.
func (t *MetricTable) merge(id wire.MetricID, value wire.MetricValue, forced bool) {
	if existing, ok := t.data[id]; ok {
		mergeInto(existing, value)
		return
	}

	if !forced && len(t.data) >= limits.MaxMetrics {
		t.bumpDropped()
		return
	}

	v := value
	t.data[id] = &v
}

func (t *MetricTable) bumpDropped() {
	id := wire.MetricID{Name: metricsDroppedName}
	if existing, ok := t.data[id]; ok {
		existing.CountSatisfied++
		return
	}
	t.data[id] = &wire.MetricValue{CountSatisfied: 1}
}

// mergeInto applies the identity-preserving merge: componentwise sum for
// counts/sums, min for Min, max for Max.
func mergeInto(dst *wire.MetricValue, src wire.MetricValue) {
	dst.CountSatisfied += src.CountSatisfied
	dst.TotalTolerated += src.TotalTolerated
	dst.ExclusiveFailed += src.ExclusiveFailed
	dst.Min = math.Min(dst.Min, src.Min)
	dst.Max = math.Max(dst.Max, src.Max)
	dst.SumSquares += src.SumSquares
}

// Merge folds another table's entries into this one, used to reinstate an
// unsent snapshot into the freshly-swapped-in table after a
// should-save-harvest-data classified shipment error.
func (t *MetricTable) Merge(other *MetricTable) {
	if other == nil {
		return
	}
	for id, v := range other.data {
		t.merge(id, *v, true)
	}
}

// Payload snapshots the table into the metric_data wire shape.
func (t *MetricTable) Payload(agentRunID string) wire.MetricDataPayload {
	now := time.Now()
	entries := make([]wire.MetricEntry, 0, len(t.data))
	for id, v := range t.data {
		entries = append(entries, wire.MetricEntry{ID: id, Value: *v})
	}
	return wire.MetricDataPayload{
		AgentRunID:  agentRunID,
		PeriodStart: t.created.Unix(),
		PeriodEnd:   now.Unix(),
		Metrics:     entries,
	}
}
