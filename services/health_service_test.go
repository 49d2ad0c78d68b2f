package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackforge/internal/config"
	"stackforge/internal/models"
)

func testHealthConfig() *config.HealthConfig {
	return &config.HealthConfig{
		MemoryThresholdPercent: 90,
		DiskThresholdPercent:   90,
		CPUThresholdPercent:    95,
		MetricsCacheSeconds:    30,
	}
}

// stubbedSystemService returns a system service whose samplers report fixed
// healthy values, keeping health service tests deterministic.
func stubbedSystemService(cfg *config.HealthConfig) *SystemService {
	s := NewSystemService(cfg)
	s.sampleMemory = func(ctx context.Context) (memorySample, error) {
		return memorySample{usedPercent: 42.0, totalBytes: 16 << 30, availBytes: 8 << 30}, nil
	}
	s.sampleDisk = func(ctx context.Context) (diskSample, error) {
		return diskSample{usedPercent: 55.0, totalBytes: 500 << 30, freeBytes: 200 << 30}, nil
	}
	s.sampleCPU = func(ctx context.Context) (float64, error) {
		return 10.0, nil
	}
	return s
}

func healthyProbe(name string) HealthCheck {
	return func(ctx context.Context) (models.ComponentStatus, error) {
		return models.ComponentStatus{Name: name, Healthy: true, Message: "OK"}, nil
	}
}

func TestPollAllCollectsAllProbes(t *testing.T) {
	h := NewHealthService(stubbedSystemService(testHealthConfig()))
	h.Register("backend", healthyProbe("backend"))
	h.Register("frontend", healthyProbe("frontend"))

	status := h.PollAll(context.Background())

	require.Contains(t, status.Components, "backend")
	require.Contains(t, status.Components, "frontend")
	assert.True(t, status.OverallHealthy)
	assert.False(t, status.Timestamp.IsZero())
	assert.NotEmpty(t, status.SystemInfo)
}

func TestPollAllSetsResponseTime(t *testing.T) {
	h := NewHealthService(stubbedSystemService(testHealthConfig()))
	h.Register("slow", func(ctx context.Context) (models.ComponentStatus, error) {
		time.Sleep(10 * time.Millisecond)
		return models.ComponentStatus{Name: "slow", Healthy: true, Message: "OK"}, nil
	})

	status := h.PollAll(context.Background())

	slow := status.Components["slow"]
	require.NotNil(t, slow.ResponseTimeMs)
	assert.GreaterOrEqual(t, *slow.ResponseTimeMs, 10.0)
}

func TestPollAllContainsProbeErrors(t *testing.T) {
	h := NewHealthService(stubbedSystemService(testHealthConfig()))
	h.Register("broken", func(ctx context.Context) (models.ComponentStatus, error) {
		return models.ComponentStatus{}, errors.New("connection refused")
	})
	h.Register("fine", healthyProbe("fine"))

	status := h.PollAll(context.Background())

	broken := status.Components["broken"]
	assert.False(t, broken.Healthy)
	assert.NotEmpty(t, broken.Message)
	assert.Contains(t, broken.Message, "connection refused")
	require.NotNil(t, broken.ResponseTimeMs, "failures still get a timing")

	// sibling probes are unaffected
	assert.True(t, status.Components["fine"].Healthy)
	assert.False(t, status.OverallHealthy)
}

func TestPollAllContainsPanics(t *testing.T) {
	h := NewHealthService(stubbedSystemService(testHealthConfig()))
	h.Register("panicky", func(ctx context.Context) (models.ComponentStatus, error) {
		panic("boom")
	})
	h.Register("fine", healthyProbe("fine"))

	status := h.PollAll(context.Background())

	panicky := status.Components["panicky"]
	assert.False(t, panicky.Healthy)
	assert.Contains(t, panicky.Message, "boom")
	assert.True(t, status.Components["fine"].Healthy)
}

func TestSystemMetricsNestedUnderBackend(t *testing.T) {
	h := NewHealthService(stubbedSystemService(testHealthConfig()))
	h.Register("backend", healthyProbe("backend"))

	status := h.PollAll(context.Background())

	backend := status.Components["backend"]
	require.Len(t, backend.SubComponents, 3)
	for _, name := range SystemMetricNames {
		assert.Contains(t, backend.SubComponents, name)
	}
}

func TestSyntheticBackendNodeWhenNoBackendProbe(t *testing.T) {
	h := NewHealthService(stubbedSystemService(testHealthConfig()))
	h.Register("frontend", healthyProbe("frontend"))

	status := h.PollAll(context.Background())

	backend, ok := status.Components["backend"]
	require.True(t, ok, "synthetic backend node must be created")
	assert.True(t, backend.Healthy)
	assert.Equal(t, "System container metrics", backend.Message)
	assert.Equal(t, true, backend.Metadata["virtual"])
	assert.Len(t, backend.SubComponents, 3)
}

func TestSyntheticBackendUnhealthyWhenMetricFails(t *testing.T) {
	cfg := testHealthConfig()
	system := stubbedSystemService(cfg)
	system.sampleDisk = func(ctx context.Context) (diskSample, error) {
		return diskSample{usedPercent: 99.0, totalBytes: 500 << 30, freeBytes: 1 << 30}, nil
	}
	h := NewHealthService(system)

	status := h.PollAll(context.Background())

	backend := status.Components["backend"]
	assert.False(t, backend.Healthy)
	assert.Equal(t, "System container has issues", backend.Message)
	assert.False(t, status.OverallHealthy)
}

func TestUnhealthyGrandchildFailsSnapshot(t *testing.T) {
	h := NewHealthService(stubbedSystemService(testHealthConfig()))
	h.Register("pipeline", func(ctx context.Context) (models.ComponentStatus, error) {
		return models.ComponentStatus{
			Name:    "pipeline",
			Healthy: true,
			Message: "OK",
			SubComponents: map[string]models.ComponentStatus{
				"stage": {
					Name:    "stage",
					Healthy: true,
					Message: "OK",
					SubComponents: map[string]models.ComponentStatus{
						"sink": {Name: "sink", Healthy: false, Message: "stalled"},
					},
				},
			},
		}, nil
	})

	status := h.PollAll(context.Background())

	// every top-level node reports healthy, yet the failing grandchild
	// must fail the whole snapshot
	assert.True(t, status.Components["pipeline"].Healthy)
	assert.False(t, status.OverallHealthy)
	assert.Less(t, status.HealthPercentage(), 100.0)
}

func TestRegisterBoolCheckAdapter(t *testing.T) {
	h := NewHealthService(stubbedSystemService(testHealthConfig()))
	h.RegisterBoolCheck("flaky", func(ctx context.Context) bool { return false })
	h.RegisterBoolCheck("solid", func(ctx context.Context) bool { return true })

	status := h.PollAll(context.Background())

	assert.False(t, status.Components["flaky"].Healthy)
	assert.Equal(t, "Failed", status.Components["flaky"].Message)
	assert.True(t, status.Components["solid"].Healthy)
	assert.Equal(t, "OK", status.Components["solid"].Message)
}

func TestRegisterOverwritesProbe(t *testing.T) {
	h := NewHealthService(stubbedSystemService(testHealthConfig()))
	h.Register("svc", func(ctx context.Context) (models.ComponentStatus, error) {
		return models.ComponentStatus{Name: "svc", Healthy: false, Message: "old"}, nil
	})
	h.Register("svc", healthyProbe("svc"))

	status := h.PollAll(context.Background())
	assert.True(t, status.Components["svc"].Healthy)
}

func TestIsHealthyProjectsOverall(t *testing.T) {
	h := NewHealthService(stubbedSystemService(testHealthConfig()))
	h.Register("fine", healthyProbe("fine"))
	assert.True(t, h.IsHealthy(context.Background()))

	h.Register("broken", func(ctx context.Context) (models.ComponentStatus, error) {
		return models.ComponentStatus{}, errors.New("down")
	})
	assert.False(t, h.IsHealthy(context.Background()))
}

func TestProbeResultNameDefaultsToRegistrationName(t *testing.T) {
	h := NewHealthService(stubbedSystemService(testHealthConfig()))
	h.Register("anon", func(ctx context.Context) (models.ComponentStatus, error) {
		return models.ComponentStatus{Healthy: true, Message: "OK"}, nil
	})

	status := h.PollAll(context.Background())
	assert.Equal(t, "anon", status.Components["anon"].Name)
}
