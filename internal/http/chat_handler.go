package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chat-relay/internal/service"
)

// ChatHandler mantiene dependencias para endpoints de conversación.
type ChatHandler struct {
	logger   *zap.Logger
	relaySvc *service.RelayService
	turnSvc  *service.TurnService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, relaySvc *service.RelayService, turnSvc *service.TurnService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		relaySvc: relaySvc,
		turnSvc:  turnSvc,
	}
}

// PostChat maneja POST /chat.
func (h *ChatHandler) PostChat(c *gin.Context) {
	var req struct {
		UserID  string `json:"userId" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing userId or message"})
		return
	}

	reply, err := h.relaySvc.HandleTurn(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing userId or message"})
		case errors.Is(err, service.ErrUserNotRegistered):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not registered"})
		case errors.Is(err, service.ErrCompletionUpstream):
			h.logger.Error("completion failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate reply"})
		case errors.Is(err, service.ErrPersistence):
			h.logger.Error("chat persistence failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save chat"})
		default:
			h.logger.Error("chat turn failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// GetMessages maneja POST /get-messages.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid get messages request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing userId"})
		return
	}

	turns, err := h.turnSvc.History(c.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing userId"})
			return
		}
		h.logger.Error("get messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": turns})
}
