// Package api wires the redo HTTP server.
package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/amhellmund/redo/internal/config"
	"github.com/amhellmund/redo/internal/handler"
	"github.com/amhellmund/redo/internal/infrastructure/database"
	infragin "github.com/amhellmund/redo/internal/infrastructure/gin"
	infralogger "github.com/amhellmund/redo/internal/infrastructure/logger"
	"github.com/amhellmund/redo/internal/infrastructure/metrics"
	"github.com/amhellmund/redo/internal/web"
)

// metricsNamespace prefixes every exported series.
const metricsNamespace = "redo"

// Dependencies are the optional backends probed by /health/ready.
// Nil fields are skipped.
type Dependencies struct {
	RedisPing func(context.Context) error
	Database  *database.Connection
}

// NewServer creates the HTTP server.
func NewServer(
	cfg *config.Config,
	log infralogger.Logger,
	deps Dependencies,
) (*infragin.Server, error) {
	webHandler, err := web.NewHandler(web.DefaultPage())
	if err != nil {
		return nil, err
	}
	healthHandler := handler.NewHealthHandler()

	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithHost(cfg.Service.Host).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithCORSOrigins(cfg.CORS.AllowedOrigins).
		WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout).
		WithShutdownTimeout(cfg.Server.ShutdownTimeout).
		WithMetrics(metrics.New(metricsNamespace)).
		WithRoutes(func(router *gin.Engine) {
			SetupRoutes(router, healthHandler, webHandler)
		})

	if deps.RedisPing != nil {
		builder = builder.WithRedisHealthCheck(deps.RedisPing)
	}
	if deps.Database != nil {
		builder = builder.WithDatabaseHealthCheck(deps.Database.Ping)
	}

	return builder.Build(), nil
}
