package handler

import (
	"net/http"
	"time"

	"mediatracker/internal/microservices/http-api/dto"
	"mediatracker/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
	log         *zap.Logger
	timeout     time.Duration
}

func NewAuthHandler(authService service.AuthService, log *zap.Logger, timeout time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, log: log, timeout: timeout}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/refresh", h.RefreshToken)
	rg.POST("/logout", h.Logout)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	user, tokens, err := h.authService.Register(ctx, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{TokenPair: *tokens, User: dto.FromUserModel(user)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	user, tokens, err := h.authService.Login(ctx, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{TokenPair: *tokens, User: dto.FromUserModel(user)})
}

// RefreshToken rotates both tokens.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	tokens, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	// always return success response to avoid token fishing
	_ = h.authService.Logout(ctx, req.RefreshToken)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
