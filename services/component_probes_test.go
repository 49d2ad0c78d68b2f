package services

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackforge/internal/config"
)

func serverPort(t *testing.T, srv *httptest.Server) int {
	t.Helper()
	_, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return port
}

func TestBackendHealthCheckHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthz", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	check := BackendHealthCheck(serverPort(t, srv))
	status, err := check(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Equal(t, http.StatusOK, status.Metadata["status_code"])
}

func TestBackendHealthCheckServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	check := BackendHealthCheck(serverPort(t, srv))
	status, err := check(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.Contains(t, status.Message, "500")
}

func TestBackendHealthCheckUnreachable(t *testing.T) {
	// grab a free port and close it again so nothing listens there
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	check := BackendHealthCheck(port)
	status, err := check(context.Background())
	require.NoError(t, err, "connection failures are contained in the status")
	assert.False(t, status.Healthy)
	assert.Equal(t, "Backend server not reachable", status.Message)
}

func TestRedisHealthCheckUnreachable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	check := RedisHealthCheck(&config.RedisConfig{Address: addr})
	status, err := check(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.Contains(t, status.Message, "Redis not reachable")
	assert.Equal(t, addr, status.Metadata["address"])
}

func TestEnabledStatusProbes(t *testing.T) {
	for _, check := range []HealthCheck{WorkerEnabledStatus(), SchedulerEnabledStatus()} {
		status, err := check(context.Background())
		require.NoError(t, err)
		assert.True(t, status.Healthy)
		assert.Contains(t, status.Message, "activated")
		assert.Equal(t, "separate_container", status.Metadata["deployment"])
	}
}

func TestRegisterComponentChecksHonorsConfig(t *testing.T) {
	cfg := &config.AppConfig{
		Health: *testHealthConfig(),
		Redis:  config.RedisConfig{Address: "127.0.0.1:1"},
		Components: config.ComponentsConfig{
			Worker:    true,
			Scheduler: false,
		},
	}
	cfg.Health.BackendPort = 1

	h := NewHealthService(stubbedSystemService(&cfg.Health))
	RegisterComponentChecks(h, cfg)

	status := h.PollAll(context.Background())
	assert.Contains(t, status.Components, "backend")
	assert.Contains(t, status.Components, "frontend")
	assert.Contains(t, status.Components, "worker")
	assert.NotContains(t, status.Components, "redis")
	assert.NotContains(t, status.Components, "scheduler")
}
