package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Josh-codes/AgriDroneX/internal/service/chat"
)

// ChatHandler serves the conversational advisor endpoint.
type ChatHandler struct {
	svc    chat.Service
	logger *zap.Logger
}

// NewChatHandler constructs the HTTP handler adapter.
func NewChatHandler(svc chat.Service, logger *zap.Logger) *ChatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{svc: svc, logger: logger}
}

type chatRequest struct {
	Message  string `json:"message" binding:"required"`
	Location string `json:"location"`
}

// Ask forwards a farming question to the advisor backend.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := h.svc.Ask(c.Request.Context(), req.Message, req.Location)
	if err != nil {
		if errors.Is(err, chat.ErrDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat advisor is not available"})
			return
		}
		h.logger.Error("advisor request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}
