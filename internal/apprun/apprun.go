// Package apprun models the immutable per-session descriptor produced by a
// successful handshake: the merge of both handshake replies with local
// config.
package apprun

import (
	"time"

	"github.com/newrelic/go-apm-agent/internal/limits"
	"github.com/newrelic/go-apm-agent/internal/wire"
)

// AppRun is shared read-only across the ingest and harvest paths once
// installed into Running state; nothing mutates it after New returns.
type AppRun struct {
	Host              string
	License           string
	AgentRunID        string
	RequestHeadersMap map[string]string
	ApdexT            time.Duration

	MetricsTracesPeriod time.Duration
	SpanEventsPeriod    time.Duration
	CustomEventsPeriod  time.Duration
	TxnEventsPeriod     time.Duration
	ErrorEventsPeriod   time.Duration

	URLRules             []wire.MetricRule
	MetricNameRules      []wire.MetricRule
	TransactionNameRules []wire.MetricRule
}

// New merges a preconnect reply, a connect reply, and local config into an
// AppRun. The fixed metrics/traces class always uses limits.FixedHarvestPeriod;
// the four configurable classes all use the server's report_period_ms when
// present, else limits.DefaultConfigurableEventHarvest.
func New(license string, redirectHost string, reply wire.ConnectReply) *AppRun {
	configurable := limits.DefaultConfigurableEventHarvest
	if reply.EventHarvestConfig.ReportPeriodMS != nil {
		configurable = time.Duration(*reply.EventHarvestConfig.ReportPeriodMS) * time.Millisecond
	}

	return &AppRun{
		Host:              redirectHost,
		License:           license,
		AgentRunID:        reply.AgentRunID,
		RequestHeadersMap: reply.RequestHeadersMap,
		ApdexT:            time.Duration(reply.ApdexThresholdSec * float64(time.Second)),

		MetricsTracesPeriod: limits.FixedHarvestPeriod,
		SpanEventsPeriod:    configurable,
		CustomEventsPeriod:  configurable,
		TxnEventsPeriod:     configurable,
		ErrorEventsPeriod:   configurable,

		URLRules:             reply.URLRules,
		MetricNameRules:      reply.MetricNameRules,
		TransactionNameRules: reply.TransactionNameRules,
	}
}
