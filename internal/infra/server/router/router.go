// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/kpi-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/kpi-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	actionController      *controller.ActionController
	performanceController *controller.PerformanceController
	recordController      *controller.RecordController
	exportController      *controller.ExportController
	writeRateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	actionController *controller.ActionController,
	performanceController *controller.PerformanceController,
	recordController *controller.RecordController,
	exportController *controller.ExportController,
	writeRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		actionController:      actionController,
		performanceController: performanceController,
		recordController:      recordController,
		exportController:      exportController,
		writeRateLimiter:      writeRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	r.engine.Use(middleware.RequestID(), middleware.CORS())
	if r.writeRateLimiter != nil {
		r.engine.Use(r.writeRateLimiter.Middleware())
	}

	r.setupHealthRoutes()
	r.setupActionRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupActionRoutes configures the action endpoint and its legacy alias.
func (r *Router) setupActionRoutes() {
	if r.actionController == nil {
		return
	}
	for _, path := range []string{"/api", "/api.php"} {
		r.engine.GET(path, r.actionController.Get)
		r.engine.POST(path, r.actionController.Post)
	}
}

// setupAPIRoutes configures the dashboard API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", r.healthController.Check)

		if r.performanceController != nil {
			v1.GET("/targets", r.performanceController.ResolveTarget)

			sections := v1.Group("/sections")
			{
				sections.GET("", r.performanceController.ListSections)
				sections.GET("/:section/performance", r.performanceController.SectionPerformance)
				sections.GET("/:section/categories/:category/summary", r.performanceController.CategorySummary)
				sections.GET("/:section/groups/:group/evolution", r.performanceController.Evolution)
				sections.GET("/:section/groups/:group/leaderboard", r.performanceController.Leaderboard)
				sections.GET("/:section/groups/:group/categories/:category/grid", r.performanceController.CategoryGrid)

				if r.exportController != nil {
					sections.GET("/:section/groups/:group/leaderboard/export", r.exportController.Leaderboard)
				}
				if r.recordController != nil {
					sections.GET("/:section/months", r.recordController.ListMonths)
					sections.POST("/:section/months/:month/lock", r.recordController.ToggleLock)
				}
			}
		}

		if r.recordController != nil {
			v1.PUT("/records", r.recordController.Update)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
