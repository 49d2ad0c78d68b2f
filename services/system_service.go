package services

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"stackforge/internal/config"
	"stackforge/internal/env"
	"stackforge/internal/logger"
	"stackforge/internal/models"
)

// SystemMetricNames is the fixed set of system metric probes that get the
// time-boxed cache treatment.
var SystemMetricNames = []string{"memory", "disk", "cpu"}

type memorySample struct {
	usedPercent float64
	totalBytes  uint64
	availBytes  uint64
}

type diskSample struct {
	usedPercent float64
	totalBytes  uint64
	freeBytes   uint64
}

type cachedMetric struct {
	status models.ComponentStatus
	at     time.Time
}

/**
 * System service samples OS level metrics (memory, disk, CPU) and caches the
 * resulting statuses for a configurable window. Each metric has its own
 * independent cache entry and age check.
 */
type SystemService struct {
	cfg *config.HealthConfig

	mu    sync.Mutex
	cache map[string]cachedMetric

	// Sampling funcs are swappable in tests
	sampleMemory func(ctx context.Context) (memorySample, error)
	sampleDisk   func(ctx context.Context) (diskSample, error)
	sampleCPU    func(ctx context.Context) (float64, error)
}

/**
 * Create new system service instance
 * @param {*config.HealthConfig} cfg - Thresholds and cache window
 * @returns {*SystemService} New system service sampling via gopsutil
 */
func NewSystemService(cfg *config.HealthConfig) *SystemService {
	return &SystemService{
		cfg:   cfg,
		cache: make(map[string]cachedMetric),
		sampleMemory: func(ctx context.Context) (memorySample, error) {
			vm, err := mem.VirtualMemoryWithContext(ctx)
			if err != nil {
				return memorySample{}, err
			}
			return memorySample{
				usedPercent: vm.UsedPercent,
				totalBytes:  vm.Total,
				availBytes:  vm.Available,
			}, nil
		},
		sampleDisk: func(ctx context.Context) (diskSample, error) {
			root := "/"
			if runtime.GOOS == "windows" {
				root = "C:"
			}
			usage, err := disk.UsageWithContext(ctx, root)
			if err != nil {
				return diskSample{}, err
			}
			return diskSample{
				usedPercent: usage.UsedPercent,
				totalBytes:  usage.Total,
				freeBytes:   usage.Free,
			}, nil
		},
		sampleCPU: func(ctx context.Context) (float64, error) {
			// Instant sampling, interval 0 returns the usage since the last call
			percents, err := cpu.PercentWithContext(ctx, 0, false)
			if err != nil {
				return 0, err
			}
			if len(percents) == 0 {
				return 0, fmt.Errorf("no cpu sample available")
			}
			return percents[0], nil
		},
	}
}

/**
 * Get system metric statuses, reusing cached entries under the window
 * @param {context.Context} ctx - Context passed to samplers
 * @param {time.Time} now - Poll cycle start, used for age checks and stamps
 * @returns {map[string]models.ComponentStatus} One status per metric
 * @description
 * - A cache hit reuses the cached status verbatim and skips the sampler
 * - Misses are sampled concurrently; one metric's miss never forces
 *   recomputation of a sibling metric
 * - Races between concurrent poll cycles at worst cause one extra
 *   recomputation, entries are idempotently overwritable
 */
func (s *SystemService) CachedMetrics(ctx context.Context, now time.Time) map[string]models.ComponentStatus {
	window := time.Duration(s.cfg.MetricsCacheSeconds) * time.Second

	checks := map[string]HealthCheck{
		"memory": s.CheckMemory,
		"disk":   s.CheckDisk,
		"cpu":    s.CheckCPU,
	}

	metrics := make(map[string]models.ComponentStatus, len(checks))
	var pending []string

	s.mu.Lock()
	for _, name := range SystemMetricNames {
		if entry, ok := s.cache[name]; ok && now.Sub(entry.at) < window {
			metrics[name] = entry.status
			continue
		}
		pending = append(pending, name)
	}
	s.mu.Unlock()

	if len(pending) == 0 {
		return metrics
	}

	type result struct {
		name   string
		status models.ComponentStatus
	}
	results := make(chan result, len(pending))
	var wg sync.WaitGroup
	for _, name := range pending {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			results <- result{name: name, status: runCheck(ctx, name, checks[name])}
		}(name)
	}
	wg.Wait()
	close(results)

	s.mu.Lock()
	for res := range results {
		metrics[res.name] = res.status
		s.cache[res.name] = cachedMetric{status: res.status, at: now}
	}
	s.mu.Unlock()

	return metrics
}

// CheckMemory reports memory usage against the configured threshold.
// The comparison uses the unrounded percentage; rounding is display only.
func (s *SystemService) CheckMemory(ctx context.Context) (models.ComponentStatus, error) {
	sample, err := s.sampleMemory(ctx)
	if err != nil {
		return models.ComponentStatus{
			Name:    "memory",
			Healthy: false,
			Message: fmt.Sprintf("Failed to check memory: %s", err.Error()),
		}, nil
	}

	healthy := sample.usedPercent < s.cfg.MemoryThresholdPercent
	return models.ComponentStatus{
		Name:    "memory",
		Healthy: healthy,
		Message: fmt.Sprintf("Memory usage: %.1f%%", sample.usedPercent),
		Metadata: map[string]interface{}{
			"percent_used":      round1(sample.usedPercent),
			"total_gb":          round2(bytesToGB(sample.totalBytes)),
			"available_gb":      round2(bytesToGB(sample.availBytes)),
			"threshold_percent": s.cfg.MemoryThresholdPercent,
		},
	}, nil
}

// CheckDisk reports disk usage of the root filesystem against the threshold.
func (s *SystemService) CheckDisk(ctx context.Context) (models.ComponentStatus, error) {
	sample, err := s.sampleDisk(ctx)
	if err != nil {
		return models.ComponentStatus{
			Name:    "disk",
			Healthy: false,
			Message: fmt.Sprintf("Failed to check disk space: %s", err.Error()),
		}, nil
	}

	healthy := sample.usedPercent < s.cfg.DiskThresholdPercent
	return models.ComponentStatus{
		Name:    "disk",
		Healthy: healthy,
		Message: fmt.Sprintf("Disk usage: %.1f%%", sample.usedPercent),
		Metadata: map[string]interface{}{
			"percent_used":      round1(sample.usedPercent),
			"total_gb":          round2(bytesToGB(sample.totalBytes)),
			"free_gb":           round2(bytesToGB(sample.freeBytes)),
			"threshold_percent": s.cfg.DiskThresholdPercent,
		},
	}, nil
}

// CheckCPU reports instantaneous CPU usage against the threshold.
func (s *SystemService) CheckCPU(ctx context.Context) (models.ComponentStatus, error) {
	percent, err := s.sampleCPU(ctx)
	if err != nil {
		return models.ComponentStatus{
			Name:    "cpu",
			Healthy: false,
			Message: fmt.Sprintf("Failed to check CPU usage: %s", err.Error()),
		}, nil
	}

	healthy := percent < s.cfg.CPUThresholdPercent
	return models.ComponentStatus{
		Name:    "cpu",
		Healthy: healthy,
		Message: fmt.Sprintf("CPU usage: %.1f%%", percent),
		Metadata: map[string]interface{}{
			"percent_used":      round1(percent),
			"cpu_count":         runtime.NumCPU(),
			"threshold_percent": s.cfg.CPUThresholdPercent,
		},
	}, nil
}

// SystemInfo returns static descriptive facts about the running process.
func (s *SystemService) SystemInfo() map[string]interface{} {
	info := map[string]interface{}{
		"go_version":    runtime.Version(),
		"platform":      env.Platform(),
		"containerized": env.Containerized(),
		"version":       env.Version,
	}
	logger.Debugf("System info collected: %v", info)
	return info
}

// ResetCache drops all cached metric entries. Test setup helper.
func (s *SystemService) ResetCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]cachedMetric)
}

func bytesToGB(b uint64) float64 {
	return float64(b) / (1024 * 1024 * 1024)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
