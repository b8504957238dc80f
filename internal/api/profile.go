package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veridyen/consultdesk/internal/middleware"
	"go.uber.org/zap"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	logger *zap.Logger
}

func NewProfileHandler(logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{logger: logger}
}

// Me handles GET /v1/profile/me.
//
// RequireProfile has already resolved (or provisioned) the profile for
// this request, so the handler only reads it back from the context.
func (h *ProfileHandler) Me(c *gin.Context) {
	profile := middleware.GetProfile(c)
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
