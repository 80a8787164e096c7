package solutions

import (
	"api/middleware"
	"api/services"

	"github.com/gin-gonic/gin"
)

var syncEngine *services.SyncEngine

// RegisterRoutes registers all routes related to solution videos
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, engine *services.SyncEngine) {
	syncEngine = engine

	solutions := r.Group("/solutions")
	{
		solutions.GET("/", GetAllSolutions)
		solutions.GET("/contest/:contest_id", GetSolutionsByContest)
		solutions.GET("/contest/name/:contest_name", GetSolutionsByContestName)
		solutions.GET("/platform/:platform", GetSolutionsByPlatform)

		solutions.POST("/sync", middleware.AuthMiddleware(), SyncPlaylists)
	}
}
