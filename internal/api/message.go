package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veridyen/consultdesk/internal/facade"
	"github.com/veridyen/consultdesk/internal/middleware"
	"go.uber.org/zap"
)

type MessageHandler struct {
	facade *facade.Facade
	logger *zap.Logger
}

func NewMessageHandler(f *facade.Facade, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{facade: f, logger: logger}
}

type listMessagesRequest struct {
	ConsultantID string `json:"consultantId"`
	ClientID     string `json:"clientId"`
}

// List handles POST /v1/messages/list.
//
// Returns the conversation between a consultant and a client, newest
// first: exactly the rows where {sender, recipient} equals the pair in
// either order. Zero matching rows is a 200 with an empty data array, not
// an error.
func (h *MessageHandler) List(c *gin.Context) {
	var req listMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	consultantID, _, err := parseBodyID(req.ConsultantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}
	clientID, present, err := parseBodyID(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	var pair *uuid.UUID
	if present {
		pair = &clientID
	}

	messages, err := h.facade.Messages(c.Request.Context(), callerFrom(c), consultantID, pair)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": messages})
}

type sendMessageRequest struct {
	RecipientID string `json:"recipientId"`
	Message     string `json:"message"`
	MessageType string `json:"messageType"`
}

// Send handles POST /v1/messages/send.
//
// The sender is always the authenticated profile; a caller cannot write a
// message on someone else's behalf.
func (h *MessageHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	recipientID, _, err := parseBodyID(req.RecipientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing params"})
		return
	}

	profile := middleware.GetProfile(c)
	if profile == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "profile not found, contact admin"})
		return
	}

	msg, err := h.facade.SendMessage(c.Request.Context(), profile.ID, recipientID, req.Message, req.MessageType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}
