package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veridyen/consultdesk/internal/facade"
	"go.uber.org/zap"
)

// ApplicationHandler serves admin-side application management and the
// public country-consultant lookup.
type ApplicationHandler struct {
	facade *facade.Facade
	logger *zap.Logger
}

func NewApplicationHandler(f *facade.Facade, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{facade: f, logger: logger}
}

type assignExistingRequest struct {
	ApplicationID string `json:"applicationId"`
	ConsultantID  string `json:"consultantId"`
}

// Assign handles POST /v1/applications/assign.
//
// Sets the consultant on an already-created application. Admin only.
func (h *ApplicationHandler) Assign(c *gin.Context) {
	var req assignExistingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	applicationID, _, err := parseBodyID(req.ApplicationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}
	consultantID, _, err := parseBodyID(req.ConsultantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	app, err := h.facade.AssignConsultant(c.Request.Context(), applicationID, consultantID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": app, "ok": true})
}

// CountryConsultant handles GET /v1/countries/:id/consultant.
//
// Returns the single active consultant for a country, or null data when
// the country has none — absence is not an error here.
func (h *ApplicationHandler) CountryConsultant(c *gin.Context) {
	countryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid country id"})
		return
	}

	consultant, err := h.facade.CountryConsultant(c.Request.Context(), countryID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": consultant})
}
