package platforms

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"api/config"
	"api/metrics"
	"api/models"

	"github.com/redis/go-redis/v9"
)

const contestCacheKey = "contests:all"

// Aggregator fans out across the platform adapters and merges their results.
// The merge order is fixed (CodeChef, LeetCode, Codeforces) regardless of
// which adapter finishes first, so slugless fallback indexes stay stable.
type Aggregator struct {
	Sources []Source
	Cache   *redis.Client
}

// NewAggregator builds the aggregator over the default adapters.
func NewAggregator(cache *redis.Client) *Aggregator {
	return &Aggregator{
		Sources: []Source{
			NewCodeChefAdapter(),
			NewLeetCodeAdapter(),
			NewCodeforcesAdapter(),
		},
		Cache: cache,
	}
}

// GetAllContests fetches every adapter concurrently and concatenates the
// results in source order. Contests that still lack a slug get a
// deterministic <platform>-<index> fallback. Results are cached briefly in
// Redis when a cache client is configured.
func (a *Aggregator) GetAllContests(ctx context.Context) []models.NormalizedContest {
	if cached := a.fromCache(ctx); cached != nil {
		return cached
	}

	results := make([][]models.NormalizedContest, len(a.Sources))
	done := make(chan int, len(a.Sources))
	for i, src := range a.Sources {
		go func(i int, src Source) {
			results[i] = src.FetchContests(ctx)
			done <- i
		}(i, src)
	}
	for range a.Sources {
		<-done
	}

	var contests []models.NormalizedContest
	for _, batch := range results {
		contests = append(contests, batch...)
	}

	// Defensive: adapters always derive a slug, but an empty one must never
	// reach a caller.
	for i := range contests {
		if contests[i].Slug == "" {
			if slug := Slugify(contests[i].Name); slug != "" {
				contests[i].Slug = slug
			} else {
				contests[i].Slug = FallbackSlug(contests[i].Platform, i)
			}
		}
	}

	log.Printf("GetAllContests: found %d contests", len(contests))
	a.toCache(ctx, contests)
	return contests
}

// GetAllContestsSorted returns the aggregate ordered by start time
// ascending, the order the "all contests" endpoint serves.
func (a *Aggregator) GetAllContestsSorted(ctx context.Context) []models.NormalizedContest {
	contests := a.GetAllContests(ctx)
	sorted := make([]models.NormalizedContest, len(contests))
	copy(sorted, contests)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})
	return sorted
}

// GetContests returns the platform-filtered aggregate, preserving the
// aggregate's ordering so numeric index lookups stay consistent.
func (a *Aggregator) GetContests(ctx context.Context, platform models.Platform) []models.NormalizedContest {
	var filtered []models.NormalizedContest
	for _, c := range a.GetAllContests(ctx) {
		if c.Platform == platform {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func (a *Aggregator) fromCache(ctx context.Context) []models.NormalizedContest {
	if a.Cache == nil {
		return nil
	}
	data, err := a.Cache.Get(ctx, contestCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("Error reading contest cache: ", err)
		}
		metrics.CacheMisses.Inc()
		return nil
	}

	var contests []models.NormalizedContest
	if err := json.Unmarshal(data, &contests); err != nil {
		log.Println("Error decoding contest cache: ", err)
		metrics.CacheMisses.Inc()
		return nil
	}
	metrics.CacheHits.Inc()
	return contests
}

func (a *Aggregator) toCache(ctx context.Context, contests []models.NormalizedContest) {
	if a.Cache == nil || len(contests) == 0 {
		return
	}
	data, err := json.Marshal(contests)
	if err != nil {
		return
	}
	ttl := config.ContestCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if err := a.Cache.Set(ctx, contestCacheKey, data, ttl).Err(); err != nil {
		log.Println("Error writing contest cache: ", err)
	}
}
