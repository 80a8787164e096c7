package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"api/metrics"
	"api/models"
)

// CodeforcesAdapter fetches the Codeforces contest list endpoint and keeps
// contests in the BEFORE phase plus the most recent finished ones.
type CodeforcesAdapter struct {
	BaseURL string
	Client  *http.Client
	// FinishedLimit caps how many finished contests are kept. The
	// aggregation path uses 30, the per-platform listing endpoint 20.
	FinishedLimit int
}

func NewCodeforcesAdapter() *CodeforcesAdapter {
	return &CodeforcesAdapter{
		BaseURL:       "https://codeforces.com",
		Client:        defaultClient,
		FinishedLimit: 30,
	}
}

func (a *CodeforcesAdapter) Platform() models.Platform {
	return models.PlatformCodeforces
}

type cfContest struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Phase            string `json:"phase"`
	StartTimeSeconds int64  `json:"startTimeSeconds"`
	DurationSeconds  int64  `json:"durationSeconds"`
}

type cfContestList struct {
	Status string      `json:"status"`
	Result []cfContest `json:"result"`
}

// FetchContests returns upcoming and recently finished Codeforces contests.
// Upstream failures are swallowed to an empty list.
func (a *CodeforcesAdapter) FetchContests(ctx context.Context) []models.NormalizedContest {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/api/contest.list", nil)
	if err != nil {
		log.Println("Error building Codeforces request: ", err)
		metrics.UpstreamFetches.WithLabelValues(string(models.PlatformCodeforces), "error").Inc()
		return nil
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		log.Println("Error fetching Codeforces contests: ", err)
		metrics.UpstreamFetches.WithLabelValues(string(models.PlatformCodeforces), "error").Inc()
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Println("Error fetching Codeforces contests: ", resp.Status)
		metrics.UpstreamFetches.WithLabelValues(string(models.PlatformCodeforces), "error").Inc()
		return nil
	}

	var list cfContestList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		log.Println("Error decoding Codeforces contests: ", err)
		metrics.UpstreamFetches.WithLabelValues(string(models.PlatformCodeforces), "error").Inc()
		return nil
	}

	var contests []models.NormalizedContest
	for _, c := range list.Result {
		if c.Phase == "BEFORE" {
			contests = append(contests, a.normalize(c, models.StatusUpcoming))
		}
	}
	finished := 0
	for _, c := range list.Result {
		if c.Phase == "FINISHED" {
			if finished >= a.FinishedLimit {
				break
			}
			contests = append(contests, a.normalize(c, models.StatusFinished))
			finished++
		}
	}

	metrics.UpstreamFetches.WithLabelValues(string(models.PlatformCodeforces), "ok").Inc()
	return contests
}

func (a *CodeforcesAdapter) normalize(c cfContest, status string) models.NormalizedContest {
	name := c.Name
	if name == "" {
		name = "Unnamed Contest"
	}
	id := fmt.Sprintf("%d", c.ID)

	return models.NormalizedContest{
		ExternalID:      id,
		Slug:            DeriveSlug(c.Name, models.PlatformCodeforces, "cf-"+id),
		Name:            name,
		Platform:        models.PlatformCodeforces,
		StartTime:       time.Unix(c.StartTimeSeconds, 0).UTC(),
		DurationMinutes: int(c.DurationSeconds / 60),
		Link:            fmt.Sprintf("https://codeforces.com/contest/%d", c.ID),
		Status:          status,
	}
}
