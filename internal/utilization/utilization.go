// Package utilization gathers the host facts echoed at connect time. This
// is deliberately a thin probe next to the teacher's full sampler stack
// (cloud SDKs, container runtimes): it reuses gopsutil for the one figure
// that needs it and sticks to the standard library everywhere else,
// covering only the handful of fields protocol version 17 asks for.
package utilization

import (
	"os"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/newrelic/go-apm-agent/pkg/config"
)

// Snapshot carries the host facts sent in the connect payload's
// utilization object.
type Snapshot struct {
	Hostname    string
	TotalRAMMib int64
	BootID      string
	InDocker    bool
	InK8s       bool
}

// Gather probes the local host, honoring cfg's detection toggles.
func Gather(cfg config.Config) Snapshot {
	hostname, _ := os.Hostname()

	s := Snapshot{
		Hostname:    hostname,
		TotalRAMMib: totalRAMMib(),
	}

	if cfg.Utilization.DetectDocker {
		s.InDocker = detectDocker()
	}
	if cfg.Utilization.DetectKubernetes {
		s.InK8s = detectKubernetes()
	}
	s.BootID = bootID()

	return s
}

func detectDocker() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}

func detectKubernetes() bool {
	return os.Getenv("KUBERNETES_SERVICE_HOST") != ""
}

func bootID() string {
	data, err := os.ReadFile("/proc/sys/kernel/random/boot_id")
	if err != nil {
		return ""
	}
	return trimNewline(string(data))
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// totalRAMMib reports total physical RAM in MiB, as reported by gopsutil
// across every platform it supports.
func totalRAMMib() int64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return int64(vm.Total / (1024 * 1024))
}
