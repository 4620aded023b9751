package services

import (
	"context"
	"runtime"
	"time"
)

// HealthStatus represents the health status of a component.
type HealthStatus string

const (
	// HealthStatusHealthy indicates the component is fully operational.
	HealthStatusHealthy HealthStatus = "healthy"
	// HealthStatusUnhealthy indicates the component is not operational.
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	// HealthStatusDegraded indicates the component has issues but is still functional.
	HealthStatusDegraded HealthStatus = "degraded"
)

// HealthCheck represents a single health check.
type HealthCheck struct {
	LastChecked time.Time              `json:"last_checked"`
	Details     map[string]interface{} `json:"details,omitempty"`
	Name        string                 `json:"name"`
	Error       string                 `json:"error,omitempty"`
	Status      HealthStatus           `json:"status"`
	Duration    time.Duration          `json:"duration"`
}

// HealthResponse represents the overall health response.
type HealthResponse struct {
	Timestamp   time.Time              `json:"timestamp"`
	System      map[string]interface{} `json:"system"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Status      HealthStatus           `json:"status"`
	Checks      []HealthCheck          `json:"checks"`
	Uptime      time.Duration          `json:"uptime"`
}

// HealthChecker defines the interface for health checkers.
type HealthChecker interface {
	Check(ctx context.Context) HealthCheck
	Name() string
}

// HealthService manages health checks for the application.
type HealthService struct {
	startTime time.Time
	version   string
	env       string
	checkers  []HealthChecker
}

// NewHealthService creates a new health service.
func NewHealthService(version, env string) *HealthService {
	return &HealthService{
		checkers:  make([]HealthChecker, 0),
		startTime: time.Now(),
		version:   version,
		env:       env,
	}
}

// RegisterChecker registers a health checker.
func (h *HealthService) RegisterChecker(checker HealthChecker) {
	h.checkers = append(h.checkers, checker)
}

// Check performs all health checks and returns the overall health status.
func (h *HealthService) Check(ctx context.Context) HealthResponse {
	checks := make([]HealthCheck, 0, len(h.checkers))
	overallStatus := HealthStatusHealthy

	for _, checker := range h.checkers {
		start := time.Now()
		check := checker.Check(ctx)
		check.Duration = time.Since(start)
		check.LastChecked = time.Now()

		checks = append(checks, check)

		if check.Status == HealthStatusUnhealthy {
			overallStatus = HealthStatusUnhealthy
		} else if check.Status == HealthStatusDegraded && overallStatus == HealthStatusHealthy {
			overallStatus = HealthStatusDegraded
		}
	}

	return HealthResponse{
		Status:      overallStatus,
		Timestamp:   time.Now(),
		Version:     h.version,
		Uptime:      time.Since(h.startTime),
		Checks:      checks,
		System:      h.getSystemInfo(),
		Environment: h.env,
	}
}

func (h *HealthService) getSystemInfo() map[string]interface{} {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"go_version":     runtime.Version(),
		"goroutines":     runtime.NumGoroutine(),
		"memory_alloc":   memStats.Alloc,
		"memory_sys":     memStats.Sys,
		"gc_cycles":      memStats.NumGC,
		"num_cpu":        runtime.NumCPU(),
	}
}

// CacheHealthChecker reports the health of the cache backend.
type CacheHealthChecker struct {
	cache CacheManager
}

// NewCacheHealthChecker creates a cache health checker.
func NewCacheHealthChecker(cache CacheManager) *CacheHealthChecker {
	return &CacheHealthChecker{cache: cache}
}

// Name returns the checker name.
func (c *CacheHealthChecker) Name() string {
	return "cache"
}

// Check reports the cache backend state. A down cache degrades rather than
// fails the service, because every cached path falls back to the repository.
func (c *CacheHealthChecker) Check(ctx context.Context) HealthCheck {
	check := HealthCheck{Name: c.Name(), Status: HealthStatusHealthy}

	stats, err := c.cache.GetCacheStats(ctx)
	if err != nil {
		check.Status = HealthStatusDegraded
		check.Error = err.Error()
		return check
	}
	if !stats.Healthy {
		check.Status = HealthStatusDegraded
	}
	check.Details = map[string]interface{}{
		"backend":   stats.Backend,
		"hits":      stats.Hits,
		"misses":    stats.Misses,
		"hit_ratio": stats.HitRatio,
	}
	return check
}

// StoreHealthChecker exercises a repository read to confirm the store answers.
type StoreHealthChecker struct {
	name  string
	probe func(ctx context.Context) error
}

// NewStoreHealthChecker creates a store health checker around a probe call.
func NewStoreHealthChecker(name string, probe func(ctx context.Context) error) *StoreHealthChecker {
	return &StoreHealthChecker{name: name, probe: probe}
}

// Name returns the checker name.
func (s *StoreHealthChecker) Name() string {
	return s.name
}

// Check runs the probe.
func (s *StoreHealthChecker) Check(ctx context.Context) HealthCheck {
	check := HealthCheck{Name: s.name, Status: HealthStatusHealthy}
	if err := s.probe(ctx); err != nil {
		check.Status = HealthStatusUnhealthy
		check.Error = err.Error()
	}
	return check
}
