package bookmarks

import (
	"net/http"
	"time"

	"api/database"
	"api/middleware"
	"api/models"
	"api/utils/response"

	"github.com/gin-gonic/gin"
)

// [GET] GetBookmarks
// @Summary List the authenticated user's bookmarked contests
// @Tags Bookmarks
// @Produce json
// @Success 200 {array} models.Bookmark
// @Router /bookmarks [get]
// @Security Bearer
func GetBookmarks(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var bookmarks []models.Bookmark
	if err := database.DB.Where("user_id = ?", user.ID).Order("bookmarked_at DESC").Find(&bookmarks).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, bookmarks)
}

// [POST] AddBookmark
// @Summary Bookmark a contest
// @Description Saves a snapshot of the contest; duplicates per (contest, platform) are rejected
// @Tags Bookmarks
// @Accept json
// @Produce json
// @Param bookmark body BookmarkRequest true "Contest to bookmark"
// @Success 201 {object} models.Bookmark
// @Failure 400 {object} map[string]string
// @Router /bookmarks [post]
// @Security Bearer
func AddBookmark(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Missing required contest information")
		return
	}

	var count int64
	database.DB.Model(&models.Bookmark{}).
		Where("user_id = ? AND contest_id = ? AND platform = ?", user.ID, req.ContestID, req.Platform).
		Count(&count)
	if count > 0 {
		response.Error(c, http.StatusBadRequest, "Contest already bookmarked")
		return
	}

	bookmark := models.Bookmark{
		UserID:          user.ID,
		ContestID:       req.ContestID,
		Slug:            req.Slug,
		Name:            req.Name,
		Platform:        req.Platform,
		StartTime:       req.Date,
		Link:            req.Link,
		DurationMinutes: req.DurationMinutes,
		Status:          req.Status,
		BookmarkedAt:    time.Now(),
	}
	if err := database.DB.Create(&bookmark).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusCreated, bookmark)
}

// [DELETE] RemoveBookmark
// @Summary Remove a bookmarked contest
// @Tags Bookmarks
// @Produce json
// @Param contest_id path string true "External contest id"
// @Param platform query string true "Platform name"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /bookmarks/{contest_id} [delete]
// @Security Bearer
func RemoveBookmark(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	contestID := c.Param("contest_id")
	platform := c.Query("platform")
	if platform == "" {
		response.Error(c, http.StatusBadRequest, "Contest ID and platform are required")
		return
	}

	result := database.DB.
		Where("user_id = ? AND contest_id = ? AND platform = ?", user.ID, contestID, platform).
		Delete(&models.Bookmark{})
	if result.Error != nil {
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	if result.RowsAffected == 0 {
		response.Error(c, http.StatusBadRequest, "Contest not found in bookmarks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contest removed from bookmarks"})
}

// [GET] CheckBookmark
// @Summary Check whether a contest is bookmarked
// @Tags Bookmarks
// @Produce json
// @Param contest_id path string true "External contest id"
// @Param platform query string true "Platform name"
// @Success 200 {object} map[string]bool
// @Router /bookmarks/check/{contest_id} [get]
// @Security Bearer
func CheckBookmark(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	contestID := c.Param("contest_id")
	platform := c.Query("platform")
	if platform == "" {
		response.Error(c, http.StatusBadRequest, "Contest ID and platform are required")
		return
	}

	var count int64
	database.DB.Model(&models.Bookmark{}).
		Where("user_id = ? AND contest_id = ? AND platform = ?", user.ID, contestID, platform).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{"is_bookmarked": count > 0})
}
