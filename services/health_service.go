package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stackforge/internal/logger"
	"stackforge/internal/models"
)

// HealthCheck is the single probe contract: every registered probe returns a
// ComponentStatus or an error. Boolean checks are wrapped by an adapter at
// registration time, there is no duck typing at poll time.
type HealthCheck func(ctx context.Context) (models.ComponentStatus, error)

/**
 * Health service aggregates named asynchronous probes into a hierarchical
 * status report. Probes are registered at startup; PollAll fans them out
 * concurrently and folds the results into one snapshot.
 */
type HealthService struct {
	mu     sync.RWMutex
	checks map[string]HealthCheck
	system *SystemService
}

/**
 * Create new health service instance
 * @param {*SystemService} system - System metric sampler (memory/disk/cpu)
 * @returns {*HealthService} New health service with an empty probe registry
 */
func NewHealthService(system *SystemService) *HealthService {
	return &HealthService{
		checks: make(map[string]HealthCheck),
		system: system,
	}
}

/**
 * Register a named health check probe
 * @param {string} name - Unique probe name, re-registering overwrites
 * @param {HealthCheck} check - Probe function
 * @description
 * - Registration is expected only at startup, before the first poll cycle
 */
func (h *HealthService) Register(name string, check HealthCheck) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
	logger.Infof("Registered health check: %s", name)
}

// RegisterBoolCheck adapts a simple boolean check to the probe contract.
func (h *HealthService) RegisterBoolCheck(name string, check func(ctx context.Context) bool) {
	h.Register(name, func(ctx context.Context) (models.ComponentStatus, error) {
		ok := check(ctx)
		message := "OK"
		if !ok {
			message = "Failed"
		}
		return models.ComponentStatus{
			Name:    name,
			Healthy: ok,
			Message: message,
		}, nil
	})
}

/**
 * Poll every registered probe and build the root snapshot
 * @param {context.Context} ctx - Context passed to each probe
 * @returns {models.SystemStatus} Snapshot with health propagated bottom-up
 * @description
 * - Launches every probe concurrently and waits for the slowest one; the
 *   aggregator imposes no poll-level deadline of its own
 * - A probe failure or panic is contained at the call site and converted to
 *   an unhealthy status carrying the error text, it never blocks siblings
 * - System metrics (memory/disk/cpu) are nested as sub components under the
 *   backend node; a synthetic backend node is created when no backend probe
 *   is registered
 * - overall_healthy is the AND across every node at every depth
 */
func (h *HealthService) PollAll(ctx context.Context) models.SystemStatus {
	start := time.Now()

	h.mu.RLock()
	checks := make(map[string]HealthCheck, len(h.checks))
	for name, check := range h.checks {
		checks[name] = check
	}
	h.mu.RUnlock()

	type result struct {
		name   string
		status models.ComponentStatus
	}

	results := make(chan result, len(checks))
	var wg sync.WaitGroup
	for name, check := range checks {
		wg.Add(1)
		go func(name string, check HealthCheck) {
			defer wg.Done()
			results <- result{name: name, status: runCheck(ctx, name, check)}
		}(name, check)
	}
	wg.Wait()
	close(results)

	components := make(map[string]models.ComponentStatus, len(checks))
	for res := range results {
		components[res.name] = res.status
	}

	systemMetrics := h.system.CachedMetrics(ctx, start)
	attachSystemMetrics(components, systemMetrics)

	overall := true
	snapshot := models.SystemStatus{
		Components: components,
		Timestamp:  start,
		SystemInfo: h.system.SystemInfo(),
	}
	for _, status := range snapshot.Flatten() {
		if !status.Healthy {
			overall = false
			break
		}
	}
	snapshot.OverallHealthy = overall

	if !overall {
		logger.Warnf("System unhealthy: %v", snapshot.UnhealthyComponents())
	}
	return snapshot
}

// IsHealthy runs a full poll and projects overall health. There is no
// lighter-weight path; the cost of a full poll is accepted for simplicity.
func (h *HealthService) IsHealthy(ctx context.Context) bool {
	return h.PollAll(ctx).OverallHealthy
}

// attachSystemMetrics nests the system metric statuses under the backend
// component, creating a synthetic backend node when no probe reported one.
func attachSystemMetrics(components map[string]models.ComponentStatus, metrics map[string]models.ComponentStatus) {
	if len(metrics) == 0 {
		return
	}

	if backend, ok := components["backend"]; ok {
		backend.SubComponents = metrics
		components["backend"] = backend
		return
	}

	healthy := true
	for _, metric := range metrics {
		if !metric.Healthy {
			healthy = false
			break
		}
	}
	message := "System container metrics"
	if !healthy {
		message = "System container has issues"
	}
	components["backend"] = models.ComponentStatus{
		Name:    "backend",
		Healthy: healthy,
		Message: message,
		Metadata: map[string]interface{}{
			"type":    "system_container",
			"virtual": true,
		},
		SubComponents: metrics,
	}
}

/**
 * Run a single health check with timing and failure containment
 * @param {context.Context} ctx - Context passed to the probe
 * @param {string} name - Probe name, used for failure statuses
 * @param {HealthCheck} check - Probe function
 * @returns {models.ComponentStatus} Completed status; failures carry the
 * error text in the message and still get a response time
 */
func runCheck(ctx context.Context, name string, check HealthCheck) (status models.ComponentStatus) {
	start := time.Now()

	setElapsed := func(s *models.ComponentStatus) {
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0
		s.ResponseTimeMs = &elapsed
	}

	defer func() {
		if r := recover(); r != nil {
			status = models.ComponentStatus{
				Name:    name,
				Healthy: false,
				Message: fmt.Sprintf("Error: panic: %v", r),
			}
			setElapsed(&status)
		}
	}()

	result, err := check(ctx)
	if err != nil {
		status = models.ComponentStatus{
			Name:    name,
			Healthy: false,
			Message: fmt.Sprintf("Error: %s", err.Error()),
		}
		setElapsed(&status)
		return status
	}

	status = result
	if status.Name == "" {
		status.Name = name
	}
	setElapsed(&status)
	return status
}
