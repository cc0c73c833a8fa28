package wire

import "encoding/json"

// TransactionEvent is the event_intrinsics map for a Transaction analytics event.
type TransactionEvent struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Timestamp     int64   `json:"timestamp"`
	Duration      float64 `json:"duration"`
	TotalTime     float64 `json:"totalTime"`
	ApdexPerfZone string  `json:"nr.apdexPerfZone,omitempty"`
	Error         bool    `json:"error"`
}

// AnalyticsEventWithAttrs is the 3-tuple (event, user_attrs, agent_attrs).
type AnalyticsEventWithAttrs struct {
	Event      TransactionEvent
	UserAttrs  map[string]interface{}
	AgentAttrs map[string]interface{}
}

// MarshalJSON renders the event as a positional 3-element array.
func (e AnalyticsEventWithAttrs) MarshalJSON() ([]byte, error) {
	userAttrs := e.UserAttrs
	if userAttrs == nil {
		userAttrs = map[string]interface{}{}
	}
	agentAttrs := e.AgentAttrs
	if agentAttrs == nil {
		agentAttrs = map[string]interface{}{}
	}
	return json.Marshal([3]interface{}{e.Event, userAttrs, agentAttrs})
}

// ReservoirProperties carries the analytic_event_data payload's
// reservoir_size/events_seen header.
type ReservoirProperties struct {
	ReservoirSize int `json:"reservoir_size"`
	EventsSeen    int `json:"events_seen"`
}

// AnalyticsEventDataPayload is the analytic_event_data RPC body:
// [agent_run_id, {reservoir_size, events_seen}, [[event, user_attrs, agent_attrs], ...]].
type AnalyticsEventDataPayload struct {
	AgentRunID string
	Properties ReservoirProperties
	Events     []AnalyticsEventWithAttrs
}

// MarshalJSON renders the payload as the fixed 3-element positional array.
func (p AnalyticsEventDataPayload) MarshalJSON() ([]byte, error) {
	events := p.Events
	if events == nil {
		events = []AnalyticsEventWithAttrs{}
	}
	return json.Marshal([3]interface{}{p.AgentRunID, p.Properties, events})
}
