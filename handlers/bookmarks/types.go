package bookmarks

import (
	"time"

	"api/models"
)

// BookmarkRequest is the contest snapshot a client sends when bookmarking.
type BookmarkRequest struct {
	ContestID       string          `json:"contest_id" binding:"required"`
	Slug            string          `json:"slug" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	Platform        models.Platform `json:"platform" binding:"required"`
	Date            time.Time       `json:"date" binding:"required"`
	Link            string          `json:"link"`
	DurationMinutes int             `json:"duration_minutes"`
	Status          string          `json:"status"`
}
