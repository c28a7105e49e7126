package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/ada/backend/internal/api"
	"github.com/pageza/ada/backend/internal/middleware"
	"github.com/pageza/ada/backend/internal/service"
	"github.com/pageza/ada/backend/internal/storage"
)

// Dependencies are the services the routes are built on
type Dependencies struct {
	Store             storage.Store
	Sessions          service.ISessionService
	Tracker           service.IWeightTracker
	Exporter          service.IPlanExporter
	Generator         service.PlanGenerator
	GenerationLimiter *middleware.RateLimiter
	CORSOrigins       []string
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// CORS middleware
	router.Use(middleware.CORS(deps.CORSOrigins))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", api.NewHealthHandler(deps.Store).HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")

	authHandler := api.NewAuthHandler(deps.Sessions)
	authHandler.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Sessions))
	{
		authHandler.RegisterProtectedRoutes(protected)
		api.NewProfileHandler(deps.Sessions).RegisterRoutes(protected)
		api.NewPlanHandler(deps.Sessions, deps.Exporter, deps.GenerationLimiter).RegisterRoutes(protected)
		api.NewWeightHandler(deps.Tracker).RegisterRoutes(protected)
		api.NewStoreHandler(deps.Generator).RegisterRoutes(protected)
	}

	return router
}
