package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veridyen/consultdesk/internal/facade"
	"go.uber.org/zap"
)

// AccountingHandler serves the back-office client overview.
type AccountingHandler struct {
	facade *facade.Facade
	logger *zap.Logger
}

func NewAccountingHandler(f *facade.Facade, logger *zap.Logger) *AccountingHandler {
	return &AccountingHandler{facade: f, logger: logger}
}

type accountingClientRequest struct {
	ClientID string `json:"clientId"`
}

// Client handles POST /v1/accounting/client.
//
// Bundles one client's documents, service requests and message history
// into a single response for the accounting panel.
func (h *AccountingHandler) Client(c *gin.Context) {
	var req accountingClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	clientID, _, err := parseBodyID(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	overview, err := h.facade.AccountingClient(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
