package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/ada/backend/internal/middleware"
	"github.com/pageza/ada/backend/internal/service"
)

// PlanHandler handles the plan routes
type PlanHandler struct {
	sessions    service.ISessionService
	exporter    service.IPlanExporter
	rateLimiter *middleware.RateLimiter
}

// NewPlanHandler creates a new PlanHandler. A nil rate limiter disables limiting.
func NewPlanHandler(sessions service.ISessionService, exporter service.IPlanExporter, rateLimiter *middleware.RateLimiter) *PlanHandler {
	return &PlanHandler{
		sessions:    sessions,
		exporter:    exporter,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes registers the plan routes on a protected group
func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plan := router.Group("/plan")
	{
		plan.GET("", h.GetPlan)
		plan.POST("/export", h.ExportPlan)
		if h.rateLimiter != nil {
			plan.POST("/regenerate", h.rateLimiter.RateLimitMiddleware(), h.RegeneratePlan)
		} else {
			plan.POST("/regenerate", h.RegeneratePlan)
		}
	}
}

// GetPlan returns the current plan and whether its week is over
func (h *PlanHandler) GetPlan(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if sess.Plan == nil {
		_ = c.Error(service.ErrNoPlan)
		return
	}

	resp := PlanResponse{
		Plan:                   sess.Plan,
		WeekExpired:            sess.WeekExpired,
		RegenerateConfirmation: service.RegenerateConfirmation(sess.WeekExpired),
	}
	if sess.WeekExpired {
		resp.ExpiredTitle = service.MsgPlanExpiredTitle
		resp.ExpiredMessage = service.MsgPlanExpiredBody
	}
	c.JSON(http.StatusOK, resp)
}

// RegeneratePlan replaces the plan using the stored profile
func (h *PlanHandler) RegeneratePlan(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.sessions.RegeneratePlan(c.Request.Context(), sess); err != nil {
		if errors.Is(err, service.ErrGenerationFailed) {
			err = middleware.WithMessage(err, sess.Error)
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, sess.View())
}

// ExportPlan uploads the plan and returns a temporary download link
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	export, err := h.exporter.Export(c.Request.Context(), sess)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, export)
}
