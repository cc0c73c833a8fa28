package apprun

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/newrelic/go-apm-agent/internal/limits"
	"github.com/newrelic/go-apm-agent/internal/wire"
)

func TestNew_DefaultsConfigurablePeriodsWhenReportPeriodMissing(t *testing.T) {
	run := New("license", "redirect.example.com", wire.ConnectReply{
		AgentRunID: "R",
	})

	assert.Equal(t, limits.FixedHarvestPeriod, run.MetricsTracesPeriod)
	assert.Equal(t, limits.DefaultConfigurableEventHarvest, run.SpanEventsPeriod)
	assert.Equal(t, limits.DefaultConfigurableEventHarvest, run.CustomEventsPeriod)
	assert.Equal(t, limits.DefaultConfigurableEventHarvest, run.TxnEventsPeriod)
	assert.Equal(t, limits.DefaultConfigurableEventHarvest, run.ErrorEventsPeriod)
}

func TestNew_UsesServerReportPeriodWhenPresent(t *testing.T) {
	ms := int64(5000)
	run := New("license", "redirect.example.com", wire.ConnectReply{
		AgentRunID: "R",
		EventHarvestConfig: wire.EventHarvestConfig{
			ReportPeriodMS: &ms,
		},
	})

	assert.Equal(t, limits.FixedHarvestPeriod, run.MetricsTracesPeriod)
	assert.Equal(t, 5*time.Second, run.TxnEventsPeriod)
	assert.Equal(t, 5*time.Second, run.CustomEventsPeriod)
	assert.Equal(t, 5*time.Second, run.SpanEventsPeriod)
	assert.Equal(t, 5*time.Second, run.ErrorEventsPeriod)
}

func TestNew_CarriesHandshakeFields(t *testing.T) {
	run := New("license", "redirect.example.com", wire.ConnectReply{
		AgentRunID:        "R",
		ApdexThresholdSec: 0.5,
		RequestHeadersMap: map[string]string{"X-Echo": "yes"},
	})

	assert.Equal(t, "R", run.AgentRunID)
	assert.Equal(t, "redirect.example.com", run.Host)
	assert.Equal(t, "license", run.License)
	assert.Equal(t, 500*time.Millisecond, run.ApdexT)
	assert.Equal(t, "yes", run.RequestHeadersMap["X-Echo"])
}
