package wire

// PreconnectRequest is the sole element of the preconnect payload.
type PreconnectRequest struct {
	SecurityPoliciesToken string `json:"security_policies_token"`
	HighSecurity          bool   `json:"high_security"`
}

// PreconnectReply is protocol_version 17's preconnect return_value.
type PreconnectReply struct {
	RedirectHost string `json:"redirect_host"`
}

// Settings echoes the locally resolved configuration under PascalCase keys
// so the collector UI can display them.
type Settings struct {
	AppName                string                 `json:"AppName"`
	Labels                 map[string]string      `json:"Labels,omitempty"`
	HostDisplayName        string                 `json:"HostDisplayName,omitempty"`
	TransactionTracerOn    bool                   `json:"TransactionTracerEnabled"`
	UtilizationDetectOpts  UtilizationSettings    `json:"Utilization"`
	AdditionalSettingsRaw  map[string]interface{} `json:"AdditionalSettings,omitempty"`
}

// UtilizationSettings mirrors the two detection toggles from Config.
type UtilizationSettings struct {
	DetectDocker     bool `json:"detect_docker"`
	DetectKubernetes bool `json:"detect_kubernetes"`
}

// UtilizationPayload is the full host-fact object sent at connect.
type UtilizationPayload struct {
	MetadataVersion int                    `json:"metadata_version"`
	LogicalCPUs     int                    `json:"logical_processors"`
	TotalRAMMib     int64                  `json:"total_ram_mib"`
	Hostname        string                 `json:"hostname"`
	BootID          string                 `json:"boot_id,omitempty"`
	Vendors         map[string]interface{} `json:"vendors,omitempty"`
}

// EventHarvestConfig carries the configurable-class report period and
// per-class limits, echoed in the connect request and returned
// authoritatively in the connect reply.
type EventHarvestConfig struct {
	ReportPeriodMS *int64        `json:"report_period_ms,omitempty"`
	HarvestLimits  HarvestLimits `json:"harvest_limits"`
}

// HarvestLimits carries the per-class event caps. A nil pointer means the
// class is not collected at all; present-but-zero means collected with a
// server-assigned cap of zero.
type HarvestLimits struct {
	AnalyticEventData *int `json:"analytic_event_data,omitempty"`
	CustomEventData   *int `json:"custom_event_data,omitempty"`
	ErrorEventData    *int `json:"error_event_data,omitempty"`
	SpanEventData     *int `json:"span_event_data,omitempty"`
}

// ConnectRequest is the sole element of the connect payload.
type ConnectRequest struct {
	PID                int                 `json:"pid"`
	Language           string              `json:"language"`
	AgentVersion       string              `json:"agent_version"`
	Host               string              `json:"host"`
	DisplayHost        string              `json:"display_host,omitempty"`
	Settings           Settings            `json:"settings"`
	AppName            []string            `json:"app_name"`
	Labels             map[string]string   `json:"labels,omitempty"`
	Utilization        UtilizationPayload  `json:"utilization"`
	EventHarvestConfig EventHarvestConfig  `json:"event_harvest_config"`
}

// MetricRule captures a single URL/metric/transaction-name rewrite rule.
// Rules are recorded verbatim; applying them during ingest is a reserved
// extension point (see the agent runtime's design notes).
type MetricRule struct {
	MatchExpression string `json:"match_expression"`
	Replacement     string `json:"replacement"`
	Ignore          bool   `json:"ignore,omitempty"`
	Terminate       bool   `json:"terminate_chain,omitempty"`
}

// ServerSideConfig carries collection enable flags the server may push down.
type ServerSideConfig struct {
	TransactionTracerEnabled *bool `json:"transaction_tracer.enabled,omitempty"`
}

// ConnectReply is protocol_version 17's connect return_value.
type ConnectReply struct {
	AgentRunID          string              `json:"agent_run_id"`
	RequestHeadersMap   map[string]string   `json:"request_headers_map,omitempty"`
	URLRules            []MetricRule        `json:"url_rules,omitempty"`
	MetricNameRules     []MetricRule        `json:"metric_name_rules,omitempty"`
	TransactionNameRules []MetricRule       `json:"transaction_name_rules,omitempty"`
	ApdexThresholdSec   float64             `json:"apdex_t"`
	ServerSideConfig    ServerSideConfig    `json:"server_side_config,omitempty"`
	EventHarvestConfig  EventHarvestConfig  `json:"event_harvest_config"`
}
