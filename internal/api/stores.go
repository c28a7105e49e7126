package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/ada/backend/internal/metrics"
	"github.com/pageza/ada/backend/internal/middleware"
	"github.com/pageza/ada/backend/internal/models"
	"github.com/pageza/ada/backend/internal/service"
	"github.com/pageza/ada/backend/internal/types"
)

// StoreHandler handles the nearby-store lookup
type StoreHandler struct {
	generator service.PlanGenerator
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(generator service.PlanGenerator) *StoreHandler {
	return &StoreHandler{generator: generator}
}

// RegisterRoutes registers the store routes on a protected group
func (h *StoreHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stores", h.FindNearbyStores)
}

// FindNearbyStores always answers 200. Failures are reported in the message.
func (h *StoreHandler) FindNearbyStores(c *gin.Context) {
	if _, ok := currentSession(c); !ok {
		return
	}

	var req types.StoreLookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(middleware.BadRequest(err))
		return
	}

	switch {
	case req.Denied:
		metrics.IncStoreLookup("denied")
		c.JSON(http.StatusOK, service.StoreLookup{Places: []models.Place{}, Message: service.MsgGeolocationDenied})
	case req.Lat == nil || req.Lng == nil:
		metrics.IncStoreLookup("unsupported")
		c.JSON(http.StatusOK, service.StoreLookup{Places: []models.Place{}, Message: service.MsgGeolocationMissing})
	default:
		c.JSON(http.StatusOK, h.generator.FindNearbyStores(c.Request.Context(), *req.Lat, *req.Lng))
	}
}
