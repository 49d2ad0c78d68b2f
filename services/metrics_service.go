package services

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"stackforge/internal/models"
)

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stackforge_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"route"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stackforge_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	errorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stackforge_request_errors_total",
			Help: "Total HTTP requests answered with status >= 400",
		},
		[]string{"route"},
	)

	componentUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stackforge_component_healthy",
			Help: "Component health from the last poll (1 healthy, 0 unhealthy)",
		},
		[]string{"component"},
	)

	componentResponseTime = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stackforge_component_response_time_ms",
			Help: "Component probe response time from the last poll",
		},
		[]string{"component"},
	)
)

// Local counters back the healthz metrics block; the Prometheus client does
// not expose counter values for reading.
var (
	totalRequests int64
	totalErrors   int64
)

func init() {
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(errorCount)
	prometheus.MustRegister(componentUp)
	prometheus.MustRegister(componentResponseTime)
}

// IncrementRequestCount counts one handled request for the route.
func IncrementRequestCount(route string) {
	requestCount.WithLabelValues(route).Inc()
	atomic.AddInt64(&totalRequests, 1)
}

// RecordRequestDuration records the handling duration for the route.
func RecordRequestDuration(route string, seconds float64) {
	requestDuration.WithLabelValues(route).Observe(seconds)
}

// IncrementErrorCount counts one failed request for the route.
func IncrementErrorCount(route string) {
	errorCount.WithLabelValues(route).Inc()
	atomic.AddInt64(&totalErrors, 1)
}

// GetTotalRequestCount returns the process-wide request count.
func GetTotalRequestCount() int64 {
	return atomic.LoadInt64(&totalRequests)
}

// GetTotalErrorCount returns the process-wide error count.
func GetTotalErrorCount() int64 {
	return atomic.LoadInt64(&totalErrors)
}

/**
 * Refresh the health gauges from a poll snapshot
 * @param {models.SystemStatus} status - Snapshot to project into gauges
 * @description
 * - Every node at every depth gets an up gauge; nodes with a recorded
 *   response time also get a response time gauge
 */
func UpdateHealthMetrics(status models.SystemStatus) {
	for _, component := range status.Flatten() {
		up := 0.0
		if component.Healthy {
			up = 1.0
		}
		componentUp.WithLabelValues(component.Name).Set(up)
		if component.ResponseTimeMs != nil {
			componentResponseTime.WithLabelValues(component.Name).Set(*component.ResponseTimeMs)
		}
	}
}
