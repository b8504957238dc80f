package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veridyen/consultdesk/internal/facade"
	"go.uber.org/zap"
)

// DocumentHandler serves document review and client notification routes.
type DocumentHandler struct {
	facade *facade.Facade
	logger *zap.Logger
}

func NewDocumentHandler(f *facade.Facade, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{facade: f, logger: logger}
}

// ListByClient handles GET /v1/clients/:id/documents.
func (h *DocumentHandler) ListByClient(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}

	docs, err := h.facade.ClientDocuments(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": docs})
}

type updateStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

// UpdateStatus handles PATCH /v1/documents/:id/status.
//
// The document id and the target state are validated before any query is
// issued; nothing reaches the store on a bad request.
func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	doc, err := h.facade.UpdateDocumentStatus(c.Request.Context(), documentID, req.Status, req.Notes)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// ListNotifications handles GET /v1/clients/:id/notifications?type=...
func (h *DocumentHandler) ListNotifications(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}
	notificationType := c.Query("type")

	notifications, err := h.facade.ClientNotifications(c.Request.Context(), clientID, notificationType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notifications})
}
