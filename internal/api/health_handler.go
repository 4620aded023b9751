package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tokentasks/internal/services"
)

// HealthHandler handles health check HTTP requests.
type HealthHandler struct {
	healthService *services.HealthService
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// RegisterRoutes registers health routes with the router.
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.GetHealth)
}

// GetHealth handles GET /health requests.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	response := h.healthService.Check(c.Request.Context())

	status := http.StatusOK
	if response.Status == services.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}
