package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veridyen/consultdesk/internal/facade"
	"go.uber.org/zap"
)

// respondError maps the facade error taxonomy to the response envelope:
// 400 for validation, 403 for a caller the rows don't belong to, 404 for
// an unresolved reference, 500 for everything else with the backend's
// message passed through verbatim.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, facade.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
	case errors.Is(err, facade.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
	case errors.Is(err, facade.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("backend operation failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
