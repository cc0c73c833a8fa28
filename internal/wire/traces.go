package wire

import "encoding/json"

// NodeAttrs carries the optional exclusive-duration field on a trace node.
type NodeAttrs struct {
	ExclusiveDurationMillis *float64 `json:"exclusive_duration_millis,omitempty"`
}

// Node is a single entry in a transaction trace's call tree: the 5-tuple
// (relative_start_ms, relative_stop_ms, name, attrs, children).
type Node struct {
	RelativeStartMillis int64
	RelativeStopMillis  int64
	Name                string
	Attrs               NodeAttrs
	Children            []Node
}

// MarshalJSON renders the node as a positional 5-element array.
func (n Node) MarshalJSON() ([]byte, error) {
	children := n.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal([5]interface{}{
		n.RelativeStartMillis, n.RelativeStopMillis, n.Name, n.Attrs, children,
	})
}

// Intrinsics carries the properties.intrinsics sub-object of a trace.
type Intrinsics struct {
	TotalTime float64 `json:"totalTime"`
}

// TraceProperties is the camelCase properties object attached to a trace.
type TraceProperties struct {
	AgentAttributes map[string]interface{} `json:"agentAttributes"`
	UserAttributes  map[string]interface{} `json:"userAttributes"`
	Intrinsics      Intrinsics              `json:"intrinsics"`
}

// TraceData is the 5-tuple (0.0, {}, {}, root_node, properties).
type TraceData struct {
	Root       Node
	Properties TraceProperties
}

// MarshalJSON renders trace data as the positional 5-element array; the two
// empty-object slots are reserved wire-compatibility placeholders.
func (d TraceData) MarshalJSON() ([]byte, error) {
	return json.Marshal([5]interface{}{
		0.0, struct{}{}, struct{}{}, d.Root, d.Properties,
	})
}

// TransactionTrace is the 10-tuple
// (start_us, duration_ms, final_name, request_uri, trace_data, cat_guid,
// reserved, force_persist, xray, synthetics_resource_id).
type TransactionTrace struct {
	StartMicros        int64
	DurationMillis     float64
	FinalName          string
	RequestURI         *string
	Data               TraceData
	CatGUID            string
	ForcePersist       bool
	SyntheticsResource string
}

// MarshalJSON renders the trace as the fixed 10-element positional array.
func (t TransactionTrace) MarshalJSON() ([]byte, error) {
	var requestURI interface{}
	if t.RequestURI != nil {
		requestURI = *t.RequestURI
	}
	return json.Marshal([10]interface{}{
		t.StartMicros,
		t.DurationMillis,
		t.FinalName,
		requestURI,
		t.Data,
		t.CatGUID,
		nil,
		t.ForcePersist,
		nil,
		t.SyntheticsResource,
	})
}

// TransactionSampleDataPayload is the transaction_sample_data RPC body:
// [agent_run_id, [trace, ...]].
type TransactionSampleDataPayload struct {
	AgentRunID string
	Traces     []TransactionTrace
}

// MarshalJSON renders the payload as the fixed 2-element positional array.
func (p TransactionSampleDataPayload) MarshalJSON() ([]byte, error) {
	traces := p.Traces
	if traces == nil {
		traces = []TransactionTrace{}
	}
	return json.Marshal([2]interface{}{p.AgentRunID, traces})
}
