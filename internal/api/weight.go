package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/ada/backend/internal/middleware"
	"github.com/pageza/ada/backend/internal/service"
	"github.com/pageza/ada/backend/internal/types"
)

// WeightHandler handles the weight tracker routes
type WeightHandler struct {
	tracker service.IWeightTracker
}

// NewWeightHandler creates a new WeightHandler
func NewWeightHandler(tracker service.IWeightTracker) *WeightHandler {
	return &WeightHandler{tracker: tracker}
}

// RegisterRoutes registers the weight routes on a protected group
func (h *WeightHandler) RegisterRoutes(router *gin.RouterGroup) {
	weight := router.Group("/weight")
	{
		weight.GET("", h.GetOverview)
		weight.POST("", h.RecordWeight)
	}
}

// GetOverview seeds the history if needed and returns the tracker state
func (h *WeightHandler) GetOverview(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.tracker.Initialize(c.Request.Context(), sess); err != nil {
		_ = c.Error(err)
		return
	}

	overview, err := h.tracker.Overview(c.Request.Context(), sess)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// RecordWeight appends a weight entry. Invalid input is answered with
// recorded=false rather than an error.
func (h *WeightHandler) RecordWeight(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req types.WeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(middleware.BadRequest(err))
		return
	}

	if err := h.tracker.Initialize(c.Request.Context(), sess); err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.tracker.Record(c.Request.Context(), sess, req.Weight.Value)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}
