package api

import (
	"github.com/gin-gonic/gin"

	"github.com/amhellmund/redo/internal/handler"
	"github.com/amhellmund/redo/internal/web"
)

// SetupRoutes registers the service routes. HEAD /health, /health/ready,
// /health/memory and /metrics come from the infrastructure builder.
func SetupRoutes(router *gin.Engine, healthHandler *handler.HealthHandler, webHandler *web.Handler) {
	router.GET("/health", healthHandler.HealthCheck)

	webHandler.Register(router)
}
