package v1

import (
	"api/handlers/auth"
	"api/handlers/bookmarks"
	"api/handlers/contests"
	"api/handlers/solutions"
	"api/middleware"
	"api/services"
	"api/services/platforms"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the wired services the route handlers use. SyncEngine is
// nil when no YouTube API key is configured.
type Dependencies struct {
	Aggregator *platforms.Aggregator
	Resolver   *services.ContestResolver
	SyncEngine *services.SyncEngine
}

// Register the endpoints for the v1 API
func Register(r *gin.Engine, deps Dependencies) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(10000, 1500)
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	auth.RegisterRoutes(v1)
	contests.RegisterRoutes(v1, deps.Aggregator, deps.Resolver, deps.SyncEngine)
	solutions.RegisterRoutes(v1, deps.SyncEngine)
	bookmarks.RegisterRoutes(v1)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
