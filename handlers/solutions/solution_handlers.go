package solutions

import (
	"errors"
	"net/http"

	"api/database"
	"api/models"
	"api/services"
	"api/utils/response"

	"github.com/gin-gonic/gin"
)

// [GET] GetAllSolutions
// @Summary List all solution videos
// @Description Every synced solution, newest publication first
// @Tags Solutions
// @Produce json
// @Success 200 {array} models.Solution
// @Router /solutions [get]
func GetAllSolutions(c *gin.Context) {
	var solutions []models.Solution
	if err := database.DB.Order("published_at DESC").Find(&solutions).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, solutions)
}

// [GET] GetSolutionsByContest
// @Summary List solutions for a stored contest
// @Tags Solutions
// @Produce json
// @Param contest_id path string true "Contest id"
// @Success 200 {array} models.Solution
// @Router /solutions/contest/{contest_id} [get]
func GetSolutionsByContest(c *gin.Context) {
	var solutions []models.Solution
	err := database.DB.
		Where("contest_id = ?", c.Param("contest_id")).
		Order("published_at DESC").
		Find(&solutions).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, solutions)
}

// [GET] GetSolutionsByContestName
// @Summary List solutions matching a contest name
// @Description Case-insensitive substring match on the denormalized contest name
// @Tags Solutions
// @Produce json
// @Param contest_name path string true "Contest name fragment"
// @Success 200 {array} models.Solution
// @Router /solutions/contest/name/{contest_name} [get]
func GetSolutionsByContestName(c *gin.Context) {
	var solutions []models.Solution
	err := database.DB.
		Where("contest_name ILIKE ?", "%"+c.Param("contest_name")+"%").
		Order("published_at DESC").
		Find(&solutions).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, solutions)
}

// [GET] GetSolutionsByPlatform
// @Summary List solutions for a platform
// @Tags Solutions
// @Produce json
// @Param platform path string true "Platform name"
// @Success 200 {array} models.Solution
// @Router /solutions/platform/{platform} [get]
func GetSolutionsByPlatform(c *gin.Context) {
	platform, err := services.ParsePlatform(c.Param("platform"))
	if err != nil {
		response.NotFound(c, "Platform not found")
		return
	}

	var solutions []models.Solution
	err = database.DB.
		Where("platform = ?", platform).
		Order("published_at DESC").
		Find(&solutions).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, solutions)
}

// [POST] SyncPlaylists
// @Summary Run a YouTube playlist sync
// @Description Triggers a sync of every configured playlist and reports the summary
// @Tags Solutions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Router /solutions/sync [post]
// @Security Bearer
func SyncPlaylists(c *gin.Context) {
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
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "YouTube playlist sync completed",
		"summary": summary,
	})
}
