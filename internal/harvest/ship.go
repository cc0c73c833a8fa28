package harvest

import (
	"context"
	"errors"

	"go.uber.org/multierr"

	"github.com/newrelic/go-apm-agent/internal/aggregate"
	"github.com/newrelic/go-apm-agent/internal/apprun"
	"github.com/newrelic/go-apm-agent/internal/collector"
	"github.com/newrelic/go-apm-agent/pkg/log"
)

const (
	methodMetricData            = "metric_data"
	methodTransactionSampleData = "transaction_sample_data"
	methodAnalyticEventData     = "analytic_event_data"
)

var hlog = log.WithComponent("harvest")

// Ready is a snapshot of the classes due for shipment at one Buffer.Ready
// call. A nil field means that class was not due, or that Ship has since
// delivered it.
type Ready struct {
	Metrics *aggregate.MetricTable
	Events  *aggregate.EventReservoir
	Traces  *aggregate.TraceRing
}

// Ship posts every present class to the collector in turn; metrics are
// posted even when the table is empty, traces and events only when
// non-empty. A disconnect or restart-exception classified error aborts
// immediately and is returned as-is so the caller can act on it; any other
// per-class error
// is logged and folded into the aggregated return via multierr so shipment
// of the remaining classes still proceeds. Each class that is delivered is
// cleared from r, so afterwards r holds only the undelivered classes.
func (r *Ready) Ship(ctx context.Context, client *collector.Client, run *apprun.AppRun) error {
	var errs error

	if r.Metrics != nil {
		payload := r.Metrics.Payload(run.AgentRunID)
		if err := client.RPC(ctx, run.Host, methodMetricData, run.AgentRunID, run.RequestHeadersMap, payload, nil); err != nil {
			if isFatal(err) {
				return err
			}
			hlog.WithError(err).Warn("metric_data shipment failed")
			errs = multierr.Append(errs, err)
		} else {
			r.Metrics = nil
		}
	}

	if r.Traces != nil && r.Traces.Len() > 0 {
		payload := r.Traces.Payload(run.AgentRunID)
		if err := client.RPC(ctx, run.Host, methodTransactionSampleData, run.AgentRunID, run.RequestHeadersMap, payload, nil); err != nil {
			if isFatal(err) {
				return err
			}
			hlog.WithError(err).Warn("transaction_sample_data shipment failed")
			errs = multierr.Append(errs, err)
		} else {
			r.Traces = nil
		}
	}

	if r.Events != nil && r.Events.Len() > 0 {
		payload := r.Events.Payload(run.AgentRunID)
		if err := client.RPC(ctx, run.Host, methodAnalyticEventData, run.AgentRunID, run.RequestHeadersMap, payload, nil); err != nil {
			if isFatal(err) {
				return err
			}
			hlog.WithError(err).Warn("analytic_event_data shipment failed")
			errs = multierr.Append(errs, err)
		} else {
			r.Events = nil
		}
	}

	return errs
}

// ShouldSaveHarvestData reports whether every non-fatal error folded into
// err (the result of Ship) warrants merging this snapshot back into the
// next harvest rather than discarding it.
func (r *Ready) ShouldSaveHarvestData(err error) bool {
	if err == nil {
		return false
	}
	for _, e := range multierr.Errors(err) {
		var ce *collector.Error
		if !errors.As(e, &ce) || !ce.ShouldSaveHarvestData() {
			return false
		}
	}
	return true
}

func isFatal(err error) bool {
	var ce *collector.Error
	if !errors.As(err, &ce) {
		return false
	}
	return ce.IsDisconnect() || ce.IsRestartException()
}
