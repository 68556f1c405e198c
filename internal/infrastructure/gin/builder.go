package gin

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amhellmund/redo/internal/infrastructure/logger"
	"github.com/amhellmund/redo/internal/infrastructure/metrics"
)

// ServerBuilder provides a fluent API for building HTTP servers.
type ServerBuilder struct {
	config       *Config
	logger       logger.Logger
	metrics      *metrics.Metrics
	setupRoutes  func(*gin.Engine)
	healthChecks map[string]HealthChecker
}

// NewServerBuilder creates a new server builder with the given name and port.
func NewServerBuilder(serviceName string, port int) *ServerBuilder {
	return &ServerBuilder{
		config:       NewConfig(serviceName, port),
		healthChecks: make(map[string]HealthChecker),
	}
}

// WithLogger sets the logger.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.logger = log
	return b
}

// WithHost sets the interface the server binds to.
func (b *ServerBuilder) WithHost(host string) *ServerBuilder {
	b.config.Host = host
	return b
}

// WithDebug enables or disables debug mode.
func (b *ServerBuilder) WithDebug(debug bool) *ServerBuilder {
	b.config.Debug = debug
	return b
}

// WithVersion sets the service version.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.config.ServiceVersion = version
	return b
}

// WithCORSOrigins sets allowed CORS origins.
func (b *ServerBuilder) WithCORSOrigins(origins []string) *ServerBuilder {
	if len(origins) > 0 {
		b.config.CORS.AllowedOrigins = origins
	}
	return b
}

// WithTimeouts sets read, write and idle timeouts. Zero values keep the defaults.
func (b *ServerBuilder) WithTimeouts(read, write, idle time.Duration) *ServerBuilder {
	if read > 0 {
		b.config.ReadTimeout = read
	}
	if write > 0 {
		b.config.WriteTimeout = write
	}
	if idle > 0 {
		b.config.IdleTimeout = idle
	}
	return b
}

// WithShutdownTimeout bounds graceful shutdown.
func (b *ServerBuilder) WithShutdownTimeout(timeout time.Duration) *ServerBuilder {
	if timeout > 0 {
		b.config.ShutdownTimeout = timeout
	}
	return b
}

// WithMetrics enables the Prometheus middleware and the /metrics endpoint.
func (b *ServerBuilder) WithMetrics(m *metrics.Metrics) *ServerBuilder {
	b.metrics = m
	return b
}

// WithHealthCheck adds a named readiness check.
func (b *ServerBuilder) WithHealthCheck(name string, checker HealthChecker) *ServerBuilder {
	b.healthChecks[name] = checker
	return b
}

// WithDatabaseHealthCheck adds a database readiness check.
func (b *ServerBuilder) WithDatabaseHealthCheck(pingFunc func(context.Context) error) *ServerBuilder {
	return b.WithHealthCheck("database", DatabaseHealthChecker(pingFunc))
}

// WithRedisHealthCheck adds a Redis readiness check.
func (b *ServerBuilder) WithRedisHealthCheck(pingFunc func(context.Context) error) *ServerBuilder {
	return b.WithHealthCheck("redis", RedisHealthChecker(pingFunc))
}

// WithRoutes sets the route setup function.
func (b *ServerBuilder) WithRoutes(setupRoutes func(*gin.Engine)) *ServerBuilder {
	b.setupRoutes = setupRoutes
	return b
}

// Build creates the server with all configured options.
func (b *ServerBuilder) Build() *Server {
	if b.logger == nil {
		b.logger = logger.NewNop()
	}

	wrappedSetup := func(router *gin.Engine) {
		RegisterHealthRoutes(router, HealthOptions{
			ServiceName:    b.config.ServiceName,
			ServiceVersion: b.config.ServiceVersion,
			Checks:         b.healthChecks,
		})

		if b.metrics != nil {
			router.GET("/metrics", gin.WrapH(b.metrics.Handler()))
		}

		if b.setupRoutes != nil {
			b.setupRoutes(router)
		}
	}

	return NewServer(b.config, b.logger, b.metrics, wrappedSetup)
}
