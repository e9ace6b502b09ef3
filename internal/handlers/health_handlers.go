package handlers

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthCheckFunc probes one dependency.
type HealthCheckFunc func(ctx context.Context) error

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	checks    map[string]HealthCheckFunc
	critical  map[string]bool
	version   string
	startedAt time.Time
	timeout   time.Duration
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(version string) *HealthHandlers {
	return &HealthHandlers{
		checks:    make(map[string]HealthCheckFunc),
		critical:  make(map[string]bool),
		version:   version,
		startedAt: time.Now(),
		timeout:   2 * time.Second,
	}
}

// Register adds a dependency probe. Critical probes also gate readiness.
func (h *HealthHandlers) Register(name string, check HealthCheckFunc, critical bool) {
	h.checks[name] = check
	h.critical[name] = critical
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Services   map[string]string `json:"services"`
	Uptime     string            `json:"uptime"`
	Version    string            `json:"version"`
	Goroutines int               `json:"goroutines"`
}

// HealthCheck performs comprehensive health checks
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	results := h.run(c.Request().Context())

	health := &HealthStatus{
		Status:     "healthy",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Services:   make(map[string]string, len(results)),
		Uptime:     time.Since(h.startedAt).Truncate(time.Second).String(),
		Version:    h.version,
		Goroutines: runtime.NumGoroutine(),
	}
	for name, err := range results {
		if err != nil {
			health.Services[name] = "unhealthy: " + err.Error()
			health.Status = "degraded"
			continue
		}
		health.Services[name] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}
	return c.JSON(statusCode, health)
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	var failed []string
	for name, err := range h.run(c.Request().Context()) {
		if err != nil && h.critical[name] {
			failed = append(failed, name)
		}
	}
	if len(failed) > 0 {
		sort.Strings(failed)
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "not_ready",
			"failing": failed,
			"message": "Critical services unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck determines if the application is running (basic liveness probe)
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandlers) run(ctx context.Context) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	results := make(map[string]error, len(h.checks))
	for name, check := range h.checks {
		results[name] = check(ctx)
	}
	return results
}
