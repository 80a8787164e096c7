package contests

import (
	"errors"
	"net/http"

	"api/services"
	"api/services/platforms"
	"api/utils/response"

	"github.com/gin-gonic/gin"
)

// [GET] GetCodeforcesContests
// @Summary List Codeforces contests
// @Description Upcoming contests plus the 20 most recently finished ones
// @Tags Contests
// @Produce json
// @Success 200 {array} ContestResponse
// @Router /contests/codeforces [get]
func GetCodeforcesContests(c *gin.Context) {
	adapter := platforms.NewCodeforcesAdapter()
	adapter.FinishedLimit = 20
	contests := adapter.FetchContests(c.Request.Context())
	c.JSON(http.StatusOK, toResponses(contests))
}

// [GET] GetCodeChefContests
// @Summary List CodeChef contests
// @Description Ongoing, upcoming and past CodeChef contests
// @Tags Contests
// @Produce json
// @Success 200 {array} ContestResponse
// @Router /contests/codechef [get]
func GetCodeChefContests(c *gin.Context) {
	contests := platforms.NewCodeChefAdapter().FetchContests(c.Request.Context())
	c.JSON(http.StatusOK, toResponses(contests))
}

// [GET] GetLeetCodeContests
// @Summary List LeetCode contests
// @Description Upcoming and past LeetCode contests
// @Tags Contests
// @Produce json
// @Success 200 {array} ContestResponse
// @Router /contests/leetcode [get]
func GetLeetCodeContests(c *gin.Context) {
	contests := platforms.NewLeetCodeAdapter().FetchContests(c.Request.Context())
	c.JSON(http.StatusOK, toResponses(contests))
}

// [GET] GetAllContests
// @Summary List contests from every platform
// @Description Aggregated contest list sorted by start time ascending
// @Tags Contests
// @Produce json
// @Success 200 {array} ContestResponse
// @Router /contests/all [get]
func GetAllContests(c *gin.Context) {
	contests := aggregator.GetAllContestsSorted(c.Request.Context())
	c.JSON(http.StatusOK, toResponses(contests))
}

// [GET] GetContestDetail
// @Summary Get a single contest with its solutions
// @Description Resolves a contest by slug, legacy numeric index, or name match
// @Tags Contests
// @Produce json
// @Param platform path string true "Platform name"
// @Param slug path string true "Contest slug or legacy index"
// @Success 200 {object} services.ContestDetail
// @Failure 404 {object} map[string]string
// @Router /contests/{platform}/{slug} [get]
func GetContestDetail(c *gin.Context) {
	platform := c.Param("platform")
	slug := c.Param("slug")

	detail, err := resolver.Resolve(c.Request.Context(), platform, slug)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPlatform) {
			response.NotFound(c, "Platform not found")
			return
		}
		if errors.Is(err, services.ErrContestNotFound) {
			response.NotFound(c, "Contest not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// [POST] SyncContestSolutions
// @Summary Trigger a YouTube playlist sync
// @Description Runs a full playlist sync and reports the summary
// @Tags Contests
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Router /contests/sync-solutions [post]
// @Security Bearer
func SyncContestSolutions(c *gin.Context) {
	if syncEngine == nil {
		response.Error(c, http.StatusServiceUnavailable, "YouTube sync is not configured")
		return
	}

	summary, err := syncEngine.SyncAllPlaylists(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrSyncInProgress) {
			response.Error(c, http.StatusConflict, "A playlist sync is already running")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Error syncing contests with YouTube")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Contest solutions synced with YouTube",
		"syncResult": summary,
	})
}
