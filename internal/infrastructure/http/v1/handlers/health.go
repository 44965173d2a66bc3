package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"orderdesk/internal/domain/cart"
)

// HealthHandler exposes liveness and service info endpoints.
type HealthHandler struct {
	registry  *cart.Registry
	startedAt time.Time
	version   string
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(registry *cart.Registry, version string) *HealthHandler {
	return &HealthHandler{
		registry:  registry,
		startedAt: time.Now(),
		version:   version,
	}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Info handles GET /health/info.
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":       "orderdesk",
		"version":       h.version,
		"uptime_sec":    int(time.Since(h.startedAt).Seconds()),
		"live_sessions": h.registry.Len(),
	})
}

// RegisterRoutes registers health routes.
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Live)
	rg.GET("/info", h.Info)
}
