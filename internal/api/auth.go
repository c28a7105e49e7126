package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/ada/backend/internal/middleware"
	"github.com/pageza/ada/backend/internal/service"
	"github.com/pageza/ada/backend/internal/types"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	sessions service.ISessionService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(sessions service.ISessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// RegisterRoutes registers the public auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes registers the routes that need a session
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/auth/logout", h.Logout)
}

// Register creates an account and returns a session token
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(middleware.BadRequest(err))
		return
	}

	sess, token, err := h.sessions.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, Session: sess.View()})
}

// Login opens a session for valid credentials
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(middleware.BadRequest(err))
		return
	}

	sess, token, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, Session: sess.View()})
}

// Logout ends the current session
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.sessions.Logout(c.Request.Context(), sess); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
}
