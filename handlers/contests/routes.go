package contests

import (
	"api/middleware"
	"api/services"
	"api/services/platforms"

	"github.com/gin-gonic/gin"
)

var (
	aggregator *platforms.Aggregator
	resolver   *services.ContestResolver
	syncEngine *services.SyncEngine
)

// RegisterRoutes registers all routes related to contests
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, agg *platforms.Aggregator, res *services.ContestResolver, engine *services.SyncEngine) {
	aggregator = agg
	resolver = res
	syncEngine = engine

	contests := r.Group("/contests")
	{
		contests.GET("/codeforces", GetCodeforcesContests)
		contests.GET("/codechef", GetCodeChefContests)
		contests.GET("/leetcode", GetLeetCodeContests)
		contests.GET("/all", GetAllContests)
		contests.GET("/export", ExportContestsExcel)
		contests.GET("/:platform/:slug", GetContestDetail)

		contests.POST("/sync-solutions", middleware.AuthMiddleware(), SyncContestSolutions)
	}
}
