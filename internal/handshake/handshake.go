// Package handshake implements the two-step preconnect+connect negotiation
// that produces an apprun.AppRun.
package handshake

import (
	"context"
	"os"
	"runtime"
	"strings"

	"github.com/newrelic/go-apm-agent/internal/apprun"
	"github.com/newrelic/go-apm-agent/internal/collector"
	"github.com/newrelic/go-apm-agent/internal/limits"
	"github.com/newrelic/go-apm-agent/internal/utilization"
	"github.com/newrelic/go-apm-agent/internal/wire"
	"github.com/newrelic/go-apm-agent/pkg/config"
	"github.com/newrelic/go-apm-agent/pkg/license"
	"github.com/newrelic/go-apm-agent/pkg/log"
)

var hlog = log.WithComponent("handshake")

const agentVersion = "1.0.0"

// Connect runs preconnect then connect against the collector and returns
// the resulting AppRun.
func Connect(ctx context.Context, cfg config.Config, client *collector.Client) (*apprun.AppRun, error) {
	preconnectHost := license.PreconnectHost(cfg.Host, cfg.License)

	var preReply wire.PreconnectReply
	err := client.RPC(ctx, preconnectHost, "preconnect", "", nil,
		[]wire.PreconnectRequest{{SecurityPoliciesToken: "", HighSecurity: false}}, &preReply)
	if err != nil {
		hlog.WithError(err).Warn("preconnect failed")
		return nil, err
	}

	req := buildConnectRequest(cfg)

	var connReply wire.ConnectReply
	err = client.RPC(ctx, preReply.RedirectHost, "connect", "", nil, []wire.ConnectRequest{req}, &connReply)
	if err != nil {
		hlog.WithError(err).Warn("connect failed")
		return nil, err
	}

	run := apprun.New(cfg.License, preReply.RedirectHost, connReply)
	hlog.WithRunID(run.AgentRunID).Info("connected")
	return run, nil
}

func buildConnectRequest(cfg config.Config) wire.ConnectRequest {
	util := utilization.Gather(cfg)

	reportPeriod := int64(limits.DefaultReportPeriodMS)
	analytic := limits.MaxTxnEvents
	custom := limits.MaxCustomEvents
	errEvents := limits.MaxErrorEvents

	return wire.ConnectRequest{
		PID:          os.Getpid(),
		Language:     "go",
		AgentVersion: agentVersion,
		Host:         util.Hostname,
		DisplayHost:  cfg.HostDisplayName,
		Settings: wire.Settings{
			AppName:             strings.Join(appNames(cfg.AppName), ";"),
			Labels:              cfg.Labels,
			HostDisplayName:     cfg.HostDisplayName,
			TransactionTracerOn: cfg.TransactionTracer.Enabled,
			UtilizationDetectOpts: wire.UtilizationSettings{
				DetectDocker:     cfg.Utilization.DetectDocker,
				DetectKubernetes: cfg.Utilization.DetectKubernetes,
			},
		},
		AppName: appNames(cfg.AppName),
		Labels:  cfg.Labels,
		Utilization: wire.UtilizationPayload{
			MetadataVersion: 5,
			LogicalCPUs:     runtime.NumCPU(),
			TotalRAMMib:     util.TotalRAMMib,
			Hostname:        util.Hostname,
			BootID:          util.BootID,
			Vendors:         vendors(util),
		},
		EventHarvestConfig: wire.EventHarvestConfig{
			ReportPeriodMS: &reportPeriod,
			HarvestLimits: wire.HarvestLimits{
				AnalyticEventData: &analytic,
				CustomEventData:   &custom,
				ErrorEventData:    &errEvents,
			},
		},
	}
}

// vendors turns the detected container facts into the collector's vendor
// map, keyed by vendor name with an (empty, since no further id is probed)
// detail object per detected vendor. A nil map omits the field entirely.
func vendors(util utilization.Snapshot) map[string]interface{} {
	var v map[string]interface{}
	if util.InDocker {
		if v == nil {
			v = map[string]interface{}{}
		}
		v["docker"] = map[string]interface{}{}
	}
	if util.InK8s {
		if v == nil {
			v = map[string]interface{}{}
		}
		v["kubernetes"] = map[string]interface{}{}
	}
	return v
}

// appNames splits cfg.AppName on ';' into at most three rollup names,
// matching the Config.Validate limit.
func appNames(name string) []string {
	parts := strings.Split(name, ";")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}
