package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"api/models"
	"api/services/platforms"

	"gorm.io/gorm"
)

// fakeStore is an in-memory ContestStore for resolver and sync tests.
type fakeStore struct {
	contests  []*models.Contest
	solutions []*models.Solution

	findContestErr error
	solutionsErr   error
	createErr      error
	updateErr      error

	creates int
	updates int
}

func (s *fakeStore) FindContest(ctx context.Context, platform models.Platform, query string) (*models.Contest, error) {
	if s.findContestErr != nil {
		return nil, s.findContestErr
	}
	for _, c := range s.contests {
		if c.Platform != platform {
			continue
		}
		if c.Slug == query || containsFold(c.Name, query) {
			return c, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FindContestByNamePattern(ctx context.Context, platform models.Platform, pattern string) (*models.Contest, error) {
	if s.findContestErr != nil {
		return nil, s.findContestErr
	}
	for _, c := range s.contests {
		if c.Platform == platform && containsFold(c.Name, pattern) {
			return c, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FindSolutionsForContestRef(ctx context.Context, contestName, externalID string) ([]*models.Solution, error) {
	if s.solutionsErr != nil {
		return nil, s.solutionsErr
	}
	var found []*models.Solution
	for _, sol := range s.solutions {
		if containsFold(sol.ContestName, contestName) || sol.ContestID == externalID {
			found = append(found, sol)
		}
	}
	return found, nil
}

func (s *fakeStore) FindSolution(ctx context.Context, contestID, videoID string) (*models.Solution, error) {
	for _, sol := range s.solutions {
		if sol.ContestID == contestID && sol.VideoID == videoID {
			return sol, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CreateSolution(ctx context.Context, solution *models.Solution) error {
	if s.createErr != nil {
		return s.createErr
	}
	for _, sol := range s.solutions {
		if sol.ContestID == solution.ContestID && sol.VideoID == solution.VideoID {
			return gorm.ErrDuplicatedKey
		}
	}
	s.creates++
	s.solutions = append(s.solutions, solution)
	return nil
}

func (s *fakeStore) UpdateSolution(ctx context.Context, solution *models.Solution) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates++
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// stubSource feeds a fixed contest list into an Aggregator.
type stubSource struct {
	platform models.Platform
	contests []models.NormalizedContest
}

func (s *stubSource) Platform() models.Platform { return s.platform }

func (s *stubSource) FetchContests(ctx context.Context) []models.NormalizedContest {
	return s.contests
}

func liveAggregator(contests ...models.NormalizedContest) *platforms.Aggregator {
	byPlatform := map[models.Platform][]models.NormalizedContest{}
	var order []models.Platform
	for _, c := range contests {
		if _, seen := byPlatform[c.Platform]; !seen {
			order = append(order, c.Platform)
		}
		byPlatform[c.Platform] = append(byPlatform[c.Platform], c)
	}
	agg := &platforms.Aggregator{}
	for _, p := range order {
		agg.Sources = append(agg.Sources, &stubSource{platform: p, contests: byPlatform[p]})
	}
	return agg
}

func cfLive(slug, name string) models.NormalizedContest {
	return models.NormalizedContest{
		ExternalID:      "1900",
		Slug:            slug,
		Name:            name,
		Platform:        models.PlatformCodeforces,
		StartTime:       time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		DurationMinutes: 120,
		Status:          models.StatusUpcoming,
	}
}

func TestResolveUnknownPlatform(t *testing.T) {
	r := NewContestResolver(&fakeStore{}, liveAggregator())
	_, err := r.Resolve(context.Background(), "topcoder", "round1")
	if !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("err = %v, want ErrUnknownPlatform", err)
	}
}

func TestResolveStoredBeforeLive(t *testing.T) {
	stored := &models.Contest{
		ID:              "11111111-1111-1111-1111-111111111111",
		ExternalID:      "1900",
		Slug:            "round912-div2",
		Name:            "Codeforces Round 912 (Div. 2)",
		Platform:        models.PlatformCodeforces,
		DurationMinutes: 135,
		Status:          models.StatusFinished,
	}
	store := &fakeStore{contests: []*models.Contest{stored}}
	// The live aggregate carries the same slug with different data; storage
	// must win.
	r := NewContestResolver(store, liveAggregator(cfLive("round912-div2", "Codeforces Round 912 (Div. 2)")))

	detail, err := r.Resolve(context.Background(), "codeforces", "round912-div2")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if detail.StoredID != stored.ID {
		t.Errorf("StoredID = %q, want stored contest id", detail.StoredID)
	}
	if detail.DurationMinutes != 135 {
		t.Errorf("DurationMinutes = %d, want the stored value 135", detail.DurationMinutes)
	}
	if detail.Duration != "135 mins" {
		t.Errorf("Duration = %q, want %q", detail.Duration, "135 mins")
	}
	if detail.Solutions == nil {
		t.Errorf("Solutions must never be nil")
	}
}

func TestResolvePlatformCaseInsensitive(t *testing.T) {
	r := NewContestResolver(&fakeStore{}, liveAggregator(cfLive("round912-div2", "Codeforces Round 912 (Div. 2)")))

	for _, raw := range []string{"codeforces", "CODEFORCES", "CodeForces"} {
		if _, err := r.Resolve(context.Background(), raw, "round912-div2"); err != nil {
			t.Errorf("Resolve(%q) error = %v", raw, err)
		}
	}
}

func TestResolveLiveSlug(t *testing.T) {
	r := NewContestResolver(&fakeStore{}, liveAggregator(cfLive("round912-div2", "Codeforces Round 912 (Div. 2)")))

	detail, err := r.Resolve(context.Background(), "codeforces", "round912-div2")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if detail.StoredID != "" {
		t.Errorf("live resolution must not set StoredID, got %q", detail.StoredID)
	}
	if detail.Duration != "2 hours" {
		t.Errorf("Duration = %q, want %q", detail.Duration, "2 hours")
	}
}

func TestResolveNumericIndex(t *testing.T) {
	first := cfLive("round912-div2", "Codeforces Round 912 (Div. 2)")
	second := cfLive("educational160", "Educational Codeforces Round 160 (Rated for Div. 2)")
	r := NewContestResolver(&fakeStore{}, liveAggregator(first, second))

	detail, err := r.Resolve(context.Background(), "codeforces", "1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if detail.Slug != "educational160" {
		t.Errorf("index 1 resolved slug %q, want %q", detail.Slug, "educational160")
	}

	if _, err := r.Resolve(context.Background(), "codeforces", "5"); !errors.Is(err, ErrContestNotFound) {
		t.Errorf("out-of-range index err = %v, want ErrContestNotFound", err)
	}
}

func TestResolveSubstring(t *testing.T) {
	r := NewContestResolver(&fakeStore{}, liveAggregator(cfLive("educational160", "Educational Codeforces Round 160 (Rated for Div. 2)")))

	detail, err := r.Resolve(context.Background(), "codeforces", "educational codeforces round 160")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if detail.Slug != "educational160" {
		t.Errorf("substring resolved slug %q, want %q", detail.Slug, "educational160")
	}
}

func TestResolveNotFound(t *testing.T) {
	r := NewContestResolver(&fakeStore{}, liveAggregator(cfLive("round912-div2", "Codeforces Round 912 (Div. 2)")))

	if _, err := r.Resolve(context.Background(), "codeforces", "round999"); !errors.Is(err, ErrContestNotFound) {
		t.Errorf("err = %v, want ErrContestNotFound", err)
	}
}

func TestResolveStoreErrorFallsThroughToLive(t *testing.T) {
	store := &fakeStore{findContestErr: errors.New("connection refused")}
	r := NewContestResolver(store, liveAggregator(cfLive("round912-div2", "Codeforces Round 912 (Div. 2)")))

	detail, err := r.Resolve(context.Background(), "codeforces", "round912-div2")
	if err != nil {
		t.Fatalf("Resolve() error = %v, want live fallback", err)
	}
	if detail.Slug != "round912-div2" {
		t.Errorf("resolved slug %q", detail.Slug)
	}
}

func TestResolveLiveAttachesSolutions(t *testing.T) {
	store := &fakeStore{solutions: []*models.Solution{
		{VideoID: "abc123", ContestName: "Codeforces Round 912 (Div. 2)", Title: "Round 912 Screencast"},
	}}
	r := NewContestResolver(store, liveAggregator(cfLive("round912-div2", "Codeforces Round 912 (Div. 2)")))

	detail, err := r.Resolve(context.Background(), "codeforces", "round912-div2")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(detail.Solutions) != 1 {
		t.Fatalf("got %d solutions, want 1", len(detail.Solutions))
	}
	if detail.Solutions[0].VideoID != "abc123" {
		t.Errorf("solution video id = %q", detail.Solutions[0].VideoID)
	}
}

func TestResolveSolutionLookupFailureDegrades(t *testing.T) {
	store := &fakeStore{solutionsErr: errors.New("connection refused")}
	r := NewContestResolver(store, liveAggregator(cfLive("round912-div2", "Codeforces Round 912 (Div. 2)")))

	detail, err := r.Resolve(context.Background(), "codeforces", "round912-div2")
	if err != nil {
		t.Fatalf("Resolve() error = %v, want degraded success", err)
	}
	if detail.Solutions == nil || len(detail.Solutions) != 0 {
		t.Errorf("Solutions = %v, want empty non-nil slice", detail.Solutions)
	}
}
