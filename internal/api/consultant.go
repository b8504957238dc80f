package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veridyen/consultdesk/internal/facade"
	"github.com/veridyen/consultdesk/internal/middleware"
	"go.uber.org/zap"
)

// ConsultantHandler serves the consultant dashboard endpoints: the roster
// lookup and the assignment flow.
type ConsultantHandler struct {
	facade *facade.Facade
	logger *zap.Logger
}

func NewConsultantHandler(f *facade.Facade, logger *zap.Logger) *ConsultantHandler {
	return &ConsultantHandler{facade: f, logger: logger}
}

// callerFrom builds the facade caller from the resolved profile. The role
// gate has already run, so the profile is always present here; the nil
// check only protects against misrouted wiring.
func callerFrom(c *gin.Context) facade.Caller {
	profile := middleware.GetProfile(c)
	if profile == nil {
		return facade.Caller{}
	}
	return facade.Caller{ProfileID: profile.ID, Role: profile.Role}
}

// parseBodyID parses an id field from a JSON body. Empty is reported as
// absent; malformed is an error.
func parseBodyID(s string) (uuid.UUID, bool, error) {
	if s == "" {
		return uuid.Nil, false, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}

type consultantClientsRequest struct {
	ConsultantID    string `json:"consultantId"`
	ConsultantEmail string `json:"consultantEmail"`
	CountryID       string `json:"countryId"`
	Search          string `json:"search"`
	Limit           int    `json:"limit"`
	Offset          int    `json:"offset"`
}

// Clients handles POST /v1/consultant/clients.
//
// Exactly one of consultantId / consultantEmail must identify the
// consultant; countryId is required. The facade verifies the caller owns
// the roster before the elevated join runs.
func (h *ConsultantHandler) Clients(c *gin.Context) {
	var req consultantClientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	consultantID, _, err := parseBodyID(req.ConsultantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}
	countryID, _, err := parseBodyID(req.CountryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	clients, err := h.facade.ConsultantClients(c.Request.Context(), callerFrom(c), facade.ConsultantClientsParams{
		ConsultantID:    consultantID,
		ConsultantEmail: req.ConsultantEmail,
		CountryID:       countryID,
		Search:          req.Search,
		Limit:           req.Limit,
		Offset:          req.Offset,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": clients, "ok": true})
}

type assignRequest struct {
	ConsultantID string `json:"consultantId"`
	ClientID     string `json:"clientId"`
	CountryID    string `json:"countryId"`
}

// Assign handles POST /v1/consultant/assign.
//
// Creates a new platform application for the client, already assigned to
// the consultant, with the fixed product defaults.
func (h *ConsultantHandler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	consultantID, _, err := parseBodyID(req.ConsultantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}
	clientID, _, err := parseBodyID(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}
	countryID, _, err := parseBodyID(req.CountryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	if _, err := h.facade.AssignConsultantToNewApplication(c.Request.Context(), consultantID, clientID, countryID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
