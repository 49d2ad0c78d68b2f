package services

import (
	"context"
	"time"

	"stackforge/internal/logger"
)

/**
 * Monitor service runs the scheduled health check job: a periodic full poll
 * whose results are logged and projected into the Prometheus gauges
 */
type MonitorService struct {
	health   *HealthService
	interval time.Duration
}

// NewMonitorService creates the periodic monitor over a health service.
func NewMonitorService(health *HealthService, interval time.Duration) *MonitorService {
	return &MonitorService{health: health, interval: interval}
}

/**
 * Start the monitoring loop, blocking until the context is cancelled
 * @param {context.Context} ctx - Loop lifetime
 * @description
 * - Runs one poll immediately, then one per interval
 * - Unhealthy components are logged per name with their message; a healthy
 *   cycle logs a single summary line
 */
func (m *MonitorService) Start(ctx context.Context) {
	logger.Infof("Health monitor started, interval %s", m.interval)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Health monitor stopped")
			return
		case <-ticker.C:
			m.runOnce(ctx)
		}
	}
}

func (m *MonitorService) runOnce(ctx context.Context) {
	status := m.health.PollAll(ctx)
	UpdateHealthMetrics(status)

	if status.OverallHealthy {
		logger.Infof("System healthy: %d/%d components OK",
			len(status.HealthyComponents()), status.TotalComponents())
		return
	}

	unhealthy := status.UnhealthyComponents()
	logger.Warnf("System issues detected: %d unhealthy components (health %.1f%%)",
		len(unhealthy), status.HealthPercentage())
	for _, name := range unhealthy {
		component := status.Components[name]
		logger.Errorf("Component %s unhealthy: %s", name, component.Message)
	}
}
