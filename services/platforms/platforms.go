package platforms

import (
	"context"
	"net/http"
	"time"

	"api/models"
)

// Source is implemented by each platform adapter. FetchContests never
// returns an error: any network, parsing, or upstream-shape failure is
// logged by the adapter and yields an empty list, so a single source outage
// cannot abort aggregation. Retry policy, if any, belongs to the caller.
type Source interface {
	Platform() models.Platform
	FetchContests(ctx context.Context) []models.NormalizedContest
}

// defaultClient is shared by the adapters; upstream calls are bounded so a
// stalled platform cannot hold a request forever.
var defaultClient = &http.Client{Timeout: 20 * time.Second}

// statusFromStartTime derives a contest status for sources that do not
// report a phase of their own.
func statusFromStartTime(start time.Time, durationMinutes int, now time.Time) string {
	if now.Before(start) {
		return models.StatusUpcoming
	}
	if now.Before(start.Add(time.Duration(durationMinutes) * time.Minute)) {
		return models.StatusOngoing
	}
	return models.StatusFinished
}
