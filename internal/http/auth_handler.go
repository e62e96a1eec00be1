package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saju-api/internal/service"
)

// AuthHandler mantiene dependencias para endpoints de autenticacion de clientes.
type AuthHandler struct {
	logger  *zap.Logger
	clients *service.ClientAuthService
	jwtServ *service.JWTService
}

func NewAuthHandler(logger *zap.Logger, clients *service.ClientAuthService, jwtServ *service.JWTService) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		clients: clients,
		jwtServ: jwtServ,
	}
}

// IssueToken maneja POST /auth/token.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req struct {
		ClientID     string `json:"client_id" binding:"required"`
		ClientSecret string `json:"client_secret" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid token request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if h.clients == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "client auth not configured"})
		return
	}

	token, err := h.clients.Authenticate(req.ClientID, req.ClientSecret)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error("issue token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, token)
}

// RevokeToken maneja POST /auth/revoke con el token en Authorization.
func (h *AuthHandler) RevokeToken(c *gin.Context) {
	if h.jwtServ == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
		return
	}
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	if err := h.jwtServ.Revoke(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.Status(http.StatusNoContent)
}
