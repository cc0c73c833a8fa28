package harvest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newrelic/go-apm-agent/internal/apprun"
	"github.com/newrelic/go-apm-agent/internal/wire"
)

func newBuffer() *Buffer {
	return New(&apprun.AppRun{
		MetricsTracesPeriod: time.Minute,
		SpanEventsPeriod:    time.Minute,
		CustomEventsPeriod:  time.Minute,
		TxnEventsPeriod:     time.Minute,
		ErrorEventsPeriod:   time.Minute,
	})
}

func TestBuffer_ReadyOnlyReturnsDueClasses(t *testing.T) {
	b := newBuffer()
	now := time.Now()

	ready := b.Ready(now, false)
	assert.Nil(t, ready.Metrics)
	assert.Nil(t, ready.Traces)
	assert.Nil(t, ready.Events)
}

func TestBuffer_ForceReturnsAllClassesAndResetsAggregators(t *testing.T) {
	b := newBuffer()
	now := time.Now()

	b.Metrics.AddCount("Custom/Thing", "", 1, false)
	b.Traces.Push(wire.TransactionTrace{FinalName: "WebTransaction/Go/foo"})
	b.Events.Add(wire.AnalyticsEventWithAttrs{Event: wire.TransactionEvent{Name: "foo"}})

	ready := b.Ready(now, true)
	require.NotNil(t, ready.Metrics)
	require.NotNil(t, ready.Traces)
	require.NotNil(t, ready.Events)
	assert.Equal(t, 1, ready.Traces.Len())
	assert.Equal(t, 1, ready.Events.Len())

	assert.Equal(t, 0, b.Traces.Len())
	assert.Equal(t, 0, b.Events.Len())
}

func TestBuffer_MergeBackReinstatesUnsentSnapshot(t *testing.T) {
	b := newBuffer()
	now := time.Now()

	b.Traces.Push(wire.TransactionTrace{FinalName: "WebTransaction/Go/foo"})
	unsent := b.Ready(now, true)

	b2 := newBuffer()
	b2.MergeBack(unsent)

	assert.Equal(t, 1, b2.Traces.Len())
	assert.Equal(t, "WebTransaction/Go/foo", b2.Traces.Traces()[0].FinalName)
}

func TestBuffer_MergeBackNilIsNoop(t *testing.T) {
	b := newBuffer()
	assert.NotPanics(t, func() { b.MergeBack(nil) })
}
