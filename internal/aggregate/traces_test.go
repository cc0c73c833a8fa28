package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/newrelic/go-apm-agent/internal/wire"
)

func trace(name string) wire.TransactionTrace {
	return wire.TransactionTrace{FinalName: name}
}

func TestTraceRing_DropsOldestOnOverflow(t *testing.T) {
	r := NewTraceRing(1)
	r.Push(trace("first"))
	r.Push(trace("second"))

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, "second", r.Payload("R").Traces[0].FinalName)
}

func TestTraceRing_EmptyPayloadHasNoTraces(t *testing.T) {
	r := NewTraceRing(1)
	assert.Empty(t, r.Payload("R").Traces)
}

func TestTraceRing_PrependBounded(t *testing.T) {
	r := NewTraceRing(2)
	r.Push(trace("kept"))

	r.PrependBounded([]wire.TransactionTrace{trace("a"), trace("b")})
	assert.Equal(t, 2, r.Len())
}
