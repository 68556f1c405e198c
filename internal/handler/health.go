package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusOK is the only status the health endpoint reports.
const StatusOK = "ok"

// StatusResponse is the body of GET /health.
type StatusResponse struct {
	Status string `json:"status"`
}

// HealthHandler answers liveness probes with a fixed payload.
type HealthHandler struct{}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HealthCheck returns {"status":"ok"}. Dependency state is reported by
// /health/ready instead, so this never changes with it.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: StatusOK})
}
