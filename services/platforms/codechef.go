package platforms

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"api/metrics"
	"api/models"
)

// CodeChefAdapter fetches the all-contests listing, which buckets contests
// into present/future/past. CodeChef already provides a stable contest code,
// so the slug is just the lowercased code.
type CodeChefAdapter struct {
	BaseURL string
	Client  *http.Client
}

func NewCodeChefAdapter() *CodeChefAdapter {
	return &CodeChefAdapter{
		BaseURL: "https://www.codechef.com",
		Client:  defaultClient,
	}
}

func (a *CodeChefAdapter) Platform() models.Platform {
	return models.PlatformCodeChef
}

type ccContest struct {
	ContestCode         string `json:"contest_code"`
	ContestName         string `json:"contest_name"`
	ContestStartDateISO string `json:"contest_start_date_iso"`
	ContestDuration     string `json:"contest_duration"`
}

type ccContestList struct {
	PresentContests []ccContest `json:"present_contests"`
	FutureContests  []ccContest `json:"future_contests"`
	PastContests    []ccContest `json:"past_contests"`
}

// FetchContests returns ongoing, upcoming and past CodeChef contests.
// Upstream failures are swallowed to an empty list.
func (a *CodeChefAdapter) FetchContests(ctx context.Context) []models.NormalizedContest {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/api/list/contests/all", nil)
	if err != nil {
		log.Println("Error building CodeChef request: ", err)
		metrics.UpstreamFetches.WithLabelValues(string(models.PlatformCodeChef), "error").Inc()
		return nil
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		log.Println("Error fetching CodeChef contests: ", err)
		metrics.UpstreamFetches.WithLabelValues(string(models.PlatformCodeChef), "error").Inc()
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Println("Error fetching CodeChef contests: ", resp.Status)
		metrics.UpstreamFetches.WithLabelValues(string(models.PlatformCodeChef), "error").Inc()
		return nil
	}

	var list ccContestList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		log.Println("Error decoding CodeChef contests: ", err)
		metrics.UpstreamFetches.WithLabelValues(string(models.PlatformCodeChef), "error").Inc()
		return nil
	}

	var contests []models.NormalizedContest
	for _, c := range list.PresentContests {
		contests = append(contests, a.normalize(c, models.StatusOngoing))
	}
	for _, c := range list.FutureContests {
		contests = append(contests, a.normalize(c, models.StatusUpcoming))
	}
	for _, c := range list.PastContests {
		contests = append(contests, a.normalize(c, models.StatusFinished))
	}

	metrics.UpstreamFetches.WithLabelValues(string(models.PlatformCodeChef), "ok").Inc()
	return contests
}

func (a *CodeChefAdapter) normalize(c ccContest, status string) models.NormalizedContest {
	name := c.ContestName
	if name == "" {
		name = "Unnamed Contest"
	}

	start, err := time.Parse(time.RFC3339, c.ContestStartDateISO)
	if err != nil {
		log.Printf("Error parsing CodeChef start date %q: %v", c.ContestStartDateISO, err)
	}

	// contest_duration is minutes as a string.
	duration, err := strconv.Atoi(strings.TrimSpace(c.ContestDuration))
	if err != nil {
		log.Printf("Error parsing CodeChef duration %q: %v", c.ContestDuration, err)
	}

	return models.NormalizedContest{
		ExternalID:      c.ContestCode,
		Slug:            strings.ToLower(c.ContestCode),
		Name:            name,
		Platform:        models.PlatformCodeChef,
		StartTime:       start.UTC(),
		DurationMinutes: duration,
		Link:            "https://www.codechef.com/" + c.ContestCode,
		Status:          status,
	}
}
