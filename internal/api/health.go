package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ServiceName is reported by the health probe.
const ServiceName = "consultdesk-api"

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	env string
}

func NewHealthHandler(env string) *HealthHandler {
	return &HealthHandler{env: env}
}

// Health handles GET /health.
//
// Liveness only: it answers from process state and never touches Postgres
// or Redis.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"ts":      time.Now().UTC().Format(time.RFC3339),
		"env":     h.env,
		"service": ServiceName,
	})
}
