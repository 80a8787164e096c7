package contests

import (
	"time"

	"api/models"
)

// ContestResponse is a NormalizedContest with the duration rendered for
// display alongside the raw minute count.
type ContestResponse struct {
	ID              string          `json:"id"`
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Platform        models.Platform `json:"platform"`
	Date            time.Time       `json:"date"`
	DurationMinutes int             `json:"duration_minutes"`
	Duration        string          `json:"duration"`
	Link            string          `json:"link"`
	Status          string          `json:"status"`
}

func toResponse(c models.NormalizedContest) ContestResponse {
	return ContestResponse{
		ID:              c.ExternalID,
		Slug:            c.Slug,
		Name:            c.Name,
		Platform:        c.Platform,
		Date:            c.StartTime,
		DurationMinutes: c.DurationMinutes,
		Duration:        c.DurationDisplay(),
		Link:            c.Link,
		Status:          c.Status,
	}
}

func toResponses(contests []models.NormalizedContest) []ContestResponse {
	responses := make([]ContestResponse, 0, len(contests))
	for _, c := range contests {
		responses = append(responses, toResponse(c))
	}
	return responses
}
