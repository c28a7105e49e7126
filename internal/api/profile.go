package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/ada/backend/internal/middleware"
	"github.com/pageza/ada/backend/internal/models"
	"github.com/pageza/ada/backend/internal/service"
	"github.com/pageza/ada/backend/internal/types"
)

// ProfileHandler handles the session view, the profile and the reset
type ProfileHandler struct {
	sessions service.ISessionService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(sessions service.ISessionService) *ProfileHandler {
	return &ProfileHandler{sessions: sessions}
}

// RegisterRoutes registers the profile routes on a protected group
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/session", h.GetSession)
	router.DELETE("/reset", h.Reset)

	profile := router.Group("/profile")
	{
		profile.PUT("", h.UpdateProfile)
		profile.GET("/bmi", h.GetBMI)
	}
}

// GetSession returns the restored session
func (h *ProfileHandler) GetSession(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.View())
}

// UpdateProfile saves the profile and generates a new plan for it
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		_ = c.Error(middleware.BadRequest(err))
		return
	}

	if err := h.sessions.SubmitProfile(c.Request.Context(), sess, profile); err != nil {
		if errors.Is(err, service.ErrGenerationFailed) {
			err = middleware.WithMessage(err, sess.Error)
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, sess.View())
}

// GetBMI analyses the stored profile, or the height and weight in the query
func (h *ProfileHandler) GetBMI(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req types.BMIRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(middleware.BadRequest(err))
		return
	}

	if req.Height != nil && req.Weight != nil {
		if *req.Height <= 0 || *req.Weight <= 0 {
			_ = c.Error(middleware.NewHTTPError(http.StatusBadRequest, "height and weight must be positive", "INVALID_REQUEST"))
			return
		}
		c.JSON(http.StatusOK, service.AnalyzeBMI(*req.Height, *req.Weight))
		return
	}

	if sess.Profile == nil {
		_ = c.Error(service.ErrNoProfile)
		return
	}
	c.JSON(http.StatusOK, service.AnalyzeProfileBMI(*sess.Profile))
}

// Reset deletes the profile, plan and weight history
func (h *ProfileHandler) Reset(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.sessions.Reset(c.Request.Context(), sess); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, sess.View())
}
