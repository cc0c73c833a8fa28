// Package wire defines the protocol-version-17 JSON payload shapes: fixed
// positional tuples the collector expects, independent of how this agent
// models the same data internally.
package wire

import (
	"encoding/json"
	"fmt"
)

// MetricID identifies a metric by name and optional scope.
type MetricID struct {
	Name  string
	Scope string
}

// MarshalJSON renders {"name": ..., "scope": ...}, omitting scope when empty.
func (id MetricID) MarshalJSON() ([]byte, error) {
	if id.Scope == "" {
		return json.Marshal(struct {
			Name string `json:"name"`
		}{id.Name})
	}
	return json.Marshal(struct {
		Name  string `json:"name"`
		Scope string `json:"scope"`
	}{id.Name, id.Scope})
}

// MetricValue is the 6-tuple (count_satisfied, total_tolerated,
// exclusive_failed, min, max, sum_squares).
type MetricValue struct {
	CountSatisfied  float64
	TotalTolerated  float64
	ExclusiveFailed float64
	Min             float64
	Max             float64
	SumSquares      float64
}

// MarshalJSON renders the value as a positional 6-element array.
func (v MetricValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([6]float64{
		v.CountSatisfied, v.TotalTolerated, v.ExclusiveFailed, v.Min, v.Max, v.SumSquares,
	})
}

// UnmarshalJSON parses the positional 6-element array back into a MetricValue.
func (v *MetricValue) UnmarshalJSON(data []byte) error {
	var arr [6]float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("metric value: %w", err)
	}
	v.CountSatisfied, v.TotalTolerated, v.ExclusiveFailed, v.Min, v.Max, v.SumSquares =
		arr[0], arr[1], arr[2], arr[3], arr[4], arr[5]
	return nil
}

// MetricEntry pairs an id with its value for a single metric_data row.
type MetricEntry struct {
	ID    MetricID
	Value MetricValue
}

// MarshalJSON renders the entry as the positional 2-element [id, value] row.
func (e MetricEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{e.ID, e.Value})
}

// MetricDataPayload is the metric_data RPC body:
// [agent_run_id, period_start_unix, period_end_unix, [[id, value], ...]].
type MetricDataPayload struct {
	AgentRunID  string
	PeriodStart int64
	PeriodEnd   int64
	Metrics     []MetricEntry
}

// MarshalJSON renders the payload as the fixed 4-element positional array.
func (p MetricDataPayload) MarshalJSON() ([]byte, error) {
	metrics := p.Metrics
	if metrics == nil {
		metrics = []MetricEntry{}
	}
	return json.Marshal([4]interface{}{p.AgentRunID, p.PeriodStart, p.PeriodEnd, metrics})
}
