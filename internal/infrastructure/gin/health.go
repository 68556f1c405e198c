package gin

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amhellmund/redo/internal/infrastructure/monitoring"
)

// HealthStatus represents the status of a health check.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// readinessTimeout bounds a full readiness evaluation.
const readinessTimeout = 5 * time.Second

// HealthResponse is the readiness response body.
type HealthResponse struct {
	Status  HealthStatus           `json:"status"`
	Service string                 `json:"service"`
	Version string                 `json:"version"`
	Uptime  string                 `json:"uptime,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult represents the result of an individual health check.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// HealthChecker performs one dependency check.
type HealthChecker func(ctx context.Context) CheckResult

// HealthOptions configures the health endpoints.
type HealthOptions struct {
	ServiceName    string
	ServiceVersion string
	// StartTime is used for uptime; zero means process start of the first server.
	StartTime time.Time
	Checks    map[string]HealthChecker
}

var healthState = struct {
	sync.Once
	startTime time.Time
}{}

// RegisterHealthRoutes adds the infrastructure health endpoints:
//   - HEAD /health         load-balancer probe
//   - GET  /health/ready   dependency checks, 503 when any critical check fails
//   - GET  /health/memory  runtime memory statistics
//
// GET /health itself is owned by the service so its payload stays fixed.
func RegisterHealthRoutes(router *gin.Engine, opts HealthOptions) {
	if opts.StartTime.IsZero() {
		healthState.Do(func() {
			healthState.startTime = time.Now()
		})
		opts.StartTime = healthState.startTime
	}

	router.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/health/ready", readinessHandler(opts))
	router.GET("/health/memory", func(c *gin.Context) {
		monitoring.MemoryHealthHandler(c.Writer, c.Request)
	})
}

func readinessHandler(opts HealthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		response := Evaluate(ctx, opts.Checks)
		response.Service = opts.ServiceName
		response.Version = opts.ServiceVersion
		response.Uptime = formatUptime(time.Since(opts.StartTime))

		statusCode := http.StatusOK
		if response.Status == HealthStatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, response)
	}
}

// Evaluate runs every check and folds the results into an overall status.
// Unhealthy dominates degraded, which dominates healthy.
func Evaluate(ctx context.Context, checks map[string]HealthChecker) HealthResponse {
	response := HealthResponse{Status: HealthStatusHealthy}
	if len(checks) == 0 {
		return response
	}

	response.Checks = make(map[string]CheckResult, len(checks))
	for name, checker := range checks {
		result := checker(ctx)
		response.Checks[name] = result

		switch result.Status {
		case HealthStatusUnhealthy:
			response.Status = HealthStatusUnhealthy
		case HealthStatusDegraded:
			if response.Status == HealthStatusHealthy {
				response.Status = HealthStatusDegraded
			}
		}
	}

	return response
}

// formatUptime renders d as "3d 4h 5m", "4h 5m", "5m 6s" or "6s".
func formatUptime(d time.Duration) string {
	const hoursPerDay = 24

	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	itoa := strconv.Itoa
	switch {
	case days > 0:
		return itoa(days) + "d " + itoa(hours) + "h " + itoa(minutes) + "m"
	case hours > 0:
		return itoa(hours) + "h " + itoa(minutes) + "m"
	case minutes > 0:
		return itoa(minutes) + "m " + itoa(seconds) + "s"
	default:
		return itoa(seconds) + "s"
	}
}

// pingChecker times pingFunc and maps a failure to failStatus.
func pingChecker(component string, failStatus HealthStatus, pingFunc func(context.Context) error) HealthChecker {
	return func(ctx context.Context) CheckResult {
		start := time.Now()
		err := pingFunc(ctx)
		latency := time.Since(start).String()

		if err != nil {
			return CheckResult{
				Status:  failStatus,
				Message: component + " connection failed",
				Latency: latency,
			}
		}

		return CheckResult{
			Status:  HealthStatusHealthy,
			Message: component + " connection OK",
			Latency: latency,
		}
	}
}

// DatabaseHealthChecker reports unhealthy when the database cannot be reached.
func DatabaseHealthChecker(pingFunc func(context.Context) error) HealthChecker {
	return pingChecker("Database", HealthStatusUnhealthy, pingFunc)
}

// RedisHealthChecker reports degraded when Redis cannot be reached.
func RedisHealthChecker(pingFunc func(context.Context) error) HealthChecker {
	return pingChecker("Redis", HealthStatusDegraded, pingFunc)
}
