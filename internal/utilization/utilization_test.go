package utilization

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/newrelic/go-apm-agent/pkg/config"
)

func TestGather_PopulatesHostname(t *testing.T) {
	snap := Gather(config.Config{})
	assert.NotEmpty(t, snap.Hostname)
}

func TestGather_HonorsDetectionToggles(t *testing.T) {
	snap := Gather(config.Config{Utilization: config.UtilizationConfig{DetectDocker: false, DetectKubernetes: false}})
	assert.False(t, snap.InDocker)
	assert.False(t, snap.InK8s)
}

func TestDetectKubernetes_ReadsEnvVar(t *testing.T) {
	t.Setenv("KUBERNETES_SERVICE_HOST", "10.0.0.1")
	assert.True(t, detectKubernetes())
}

func TestTrimNewline(t *testing.T) {
	assert.Equal(t, "abc", trimNewline("abc\n"))
	assert.Equal(t, "abc", trimNewline("abc\r\n"))
	assert.Equal(t, "abc", trimNewline("abc"))
}

func TestTotalRAMMib_ReportsNonzeroOnAHostWithMemory(t *testing.T) {
	assert.Positive(t, totalRAMMib())
}
