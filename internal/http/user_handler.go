package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chat-relay/internal/service"
)

// UserHandler mantiene dependencias para endpoints de registro.
type UserHandler struct {
	logger      *zap.Logger
	registerSvc *service.RegisterService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, registerSvc *service.RegisterService) *UserHandler {
	return &UserHandler{
		logger:      logger,
		registerSvc: registerSvc,
	}
}

// RegisterUser maneja POST /register-user.
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing name or email"})
		return
	}

	user, err := h.registerSvc.Register(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing name or email"})
		case errors.Is(err, service.ErrRegistrationUpstream):
			h.logger.Error("platform registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
		default:
			h.logger.Error("register user failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId": user.UserID,
		"name":   user.Name,
		"email":  user.Email,
	})
}
