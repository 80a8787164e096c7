package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"api/models"

	"gorm.io/gorm"
)

// fakeFetcher serves canned playlist videos keyed by playlist id. A playlist
// listed in errs fails; block, when set, stalls every fetch until released.
type fakeFetcher struct {
	videos map[string][]PlaylistVideo
	errs   map[string]error
	block  chan struct{}
}

func (f *fakeFetcher) FetchPlaylistVideos(ctx context.Context, playlistID string) ([]PlaylistVideo, error) {
	if f.block != nil {
		<-f.block
	}
	if err, ok := f.errs[playlistID]; ok {
		return nil, err
	}
	return f.videos[playlistID], nil
}

func testPlaylists() []Playlist {
	return []Playlist{
		{
			Name: "LEETCODE",
			ID:   "pl-leetcode",
			Patterns: []VideoPattern{
				{Regex: regexp.MustCompile(`(?i)Leetcode Weekly Contest (\d+)`), Platform: models.PlatformLeetCode, TypeLabel: "Weekly Contest"},
				{Regex: regexp.MustCompile(`(?i)Leetcode Biweekly Contest (\d+)`), Platform: models.PlatformLeetCode, TypeLabel: "Biweekly Contest"},
			},
		},
		{
			Name: "CODEFORCES",
			ID:   "pl-codeforces",
			Patterns: []VideoPattern{
				{Regex: regexp.MustCompile(`(?i)Educational Codeforces Round (\d+)`), Platform: models.PlatformCodeforces, TypeLabel: "Educational Round"},
				{Regex: regexp.MustCompile(`(?i)Codeforces Round (\d+)`), Platform: models.PlatformCodeforces, TypeLabel: "Round"},
			},
		},
	}
}

func storedContest(id, name string, platform models.Platform) *models.Contest {
	return &models.Contest{
		ID:       id,
		Name:     name,
		Platform: platform,
		Slug:     name,
		Status:   models.StatusFinished,
	}
}

func video(id, title string) PlaylistVideo {
	return PlaylistVideo{
		VideoID:     id,
		Title:       title,
		Description: "solution walkthrough",
		PublishedAt: time.Date(2024, 2, 1, 18, 0, 0, 0, time.UTC),
	}
}

func TestMatchVideoTitle(t *testing.T) {
	patterns := testPlaylists()[1].Patterns

	tests := []struct {
		title    string
		wantOK   bool
		wantType string
		wantNum  string
	}{
		{"Codeforces Round 912 (Div. 2) | Full Solutions", true, "Round", "912"},
		// Educational titles also contain "Codeforces Round N" and must hit
		// the educational pattern first.
		{"Educational Codeforces Round 160 | Screencast", true, "Educational Round", "160"},
		{"educational codeforces round 161", true, "Educational Round", "161"},
		{"Weekly vlog #12", false, "", ""},
	}
	for _, tt := range tests {
		match, ok := MatchVideoTitle(tt.title, patterns)
		if ok != tt.wantOK {
			t.Errorf("MatchVideoTitle(%q) ok = %v, want %v", tt.title, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if match.TypeLabel != tt.wantType || match.Number != tt.wantNum {
			t.Errorf("MatchVideoTitle(%q) = %s %s, want %s %s", tt.title, match.TypeLabel, match.Number, tt.wantType, tt.wantNum)
		}
	}
}

func TestMatchVideoTitleBiweekly(t *testing.T) {
	patterns := testPlaylists()[0].Patterns

	match, ok := MatchVideoTitle("Leetcode Biweekly Contest 120 Solutions", patterns)
	if !ok {
		t.Fatal("biweekly title did not match")
	}
	if match.TypeLabel != "Biweekly Contest" || match.Number != "120" {
		t.Errorf("got %s %s, want Biweekly Contest 120", match.TypeLabel, match.Number)
	}
}

func TestContestNamePattern(t *testing.T) {
	tests := []struct {
		match videoMatch
		want  string
	}{
		{videoMatch{Platform: models.PlatformLeetCode, TypeLabel: "Weekly Contest", Number: "380"}, "Weekly Contest 380"},
		{videoMatch{Platform: models.PlatformLeetCode, TypeLabel: "Biweekly Contest", Number: "120"}, "Biweekly Contest 120"},
		{videoMatch{Platform: models.PlatformCodeforces, TypeLabel: "Round", Number: "912"}, "Codeforces Round #912"},
		{videoMatch{Platform: models.PlatformCodeforces, TypeLabel: "Educational Round", Number: "160"}, "Educational Codeforces Round #160"},
		{videoMatch{Platform: models.PlatformCodeChef, TypeLabel: "Starters", Number: "120"}, "CodeChef Starters 120"},
	}
	for _, tt := range tests {
		got, err := ContestNamePattern(tt.match)
		if err != nil {
			t.Errorf("ContestNamePattern(%+v) error = %v", tt.match, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ContestNamePattern(%+v) = %q, want %q", tt.match, got, tt.want)
		}
	}

	if _, err := ContestNamePattern(videoMatch{Platform: models.PlatformAtCoder}); err == nil {
		t.Error("expected error for platform without a name pattern")
	}
}

func TestSyncAllPlaylists(t *testing.T) {
	store := &fakeStore{contests: []*models.Contest{
		storedContest("c-week-380", "Weekly Contest 380", models.PlatformLeetCode),
		storedContest("c-round-912", "Codeforces Round #912 (Div. 2)", models.PlatformCodeforces),
	}}
	fetcher := &fakeFetcher{videos: map[string][]PlaylistVideo{
		"pl-leetcode": {
			video("v1", "Leetcode Weekly Contest 380 | All Problems"),
			video("v2", "How I prepare for contests"),
		},
		"pl-codeforces": {
			video("v3", "Codeforces Round 912 Solutions"),
			video("v4", "Codeforces Round 999 Solutions"),
		},
	}}
	engine := &SyncEngine{Fetcher: fetcher, Store: store, Playlists: testPlaylists()}

	summary, err := engine.SyncAllPlaylists(context.Background())
	if err != nil {
		t.Fatalf("SyncAllPlaylists() error = %v", err)
	}
	want := SyncSummary{Processed: 4, Added: 2, Skipped: 2}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}

	sol, err := store.FindSolution(context.Background(), "c-week-380", "v1")
	if err != nil || sol == nil {
		t.Fatalf("solution for weekly contest not stored: %v", err)
	}
	if sol.ContestName != "Weekly Contest 380" {
		t.Errorf("solution contest name = %q", sol.ContestName)
	}
	if sol.Platform != models.PlatformLeetCode {
		t.Errorf("solution platform = %s", sol.Platform)
	}
}

func TestSyncIdempotent(t *testing.T) {
	store := &fakeStore{contests: []*models.Contest{
		storedContest("c-week-380", "Weekly Contest 380", models.PlatformLeetCode),
	}}
	fetcher := &fakeFetcher{videos: map[string][]PlaylistVideo{
		"pl-leetcode": {video("v1", "Leetcode Weekly Contest 380 | All Problems")},
	}}
	engine := &SyncEngine{Fetcher: fetcher, Store: store, Playlists: testPlaylists()[:1]}

	first, err := engine.SyncAllPlaylists(context.Background())
	if err != nil {
		t.Fatalf("first run error = %v", err)
	}
	if first.Added != 1 {
		t.Fatalf("first run added = %d, want 1", first.Added)
	}

	second, err := engine.SyncAllPlaylists(context.Background())
	if err != nil {
		t.Fatalf("second run error = %v", err)
	}
	if second.Added != 0 || second.Updated != 1 {
		t.Errorf("second run = %+v, want added 0 and updated 1", second)
	}
	if len(store.solutions) != 1 {
		t.Errorf("store holds %d solutions, want 1", len(store.solutions))
	}
}

func TestSyncUpdateRefreshesFields(t *testing.T) {
	store := &fakeStore{
		contests: []*models.Contest{storedContest("c-week-380", "Weekly Contest 380", models.PlatformLeetCode)},
		solutions: []*models.Solution{{
			ContestID:   "c-week-380",
			VideoID:     "v1",
			Title:       "old title",
			ContestName: "Weekly Contest 380",
		}},
	}
	fetcher := &fakeFetcher{videos: map[string][]PlaylistVideo{
		"pl-leetcode": {video("v1", "Leetcode Weekly Contest 380 | All Problems")},
	}}
	engine := &SyncEngine{Fetcher: fetcher, Store: store, Playlists: testPlaylists()[:1]}

	summary, err := engine.SyncAllPlaylists(context.Background())
	if err != nil {
		t.Fatalf("SyncAllPlaylists() error = %v", err)
	}
	if summary.Updated != 1 || summary.Added != 0 {
		t.Errorf("summary = %+v, want 1 update", summary)
	}
	if store.solutions[0].Title != "Leetcode Weekly Contest 380 | All Problems" {
		t.Errorf("title not refreshed: %q", store.solutions[0].Title)
	}
	if store.updates != 1 {
		t.Errorf("updates = %d, want 1", store.updates)
	}
}

func TestSyncPlaylistErrorIsolated(t *testing.T) {
	store := &fakeStore{contests: []*models.Contest{
		storedContest("c-round-912", "Codeforces Round #912 (Div. 2)", models.PlatformCodeforces),
	}}
	fetcher := &fakeFetcher{
		videos: map[string][]PlaylistVideo{
			"pl-codeforces": {video("v3", "Codeforces Round 912 Solutions")},
		},
		errs: map[string]error{"pl-leetcode": errors.New("quota exceeded")},
	}
	engine := &SyncEngine{Fetcher: fetcher, Store: store, Playlists: testPlaylists()}

	summary, err := engine.SyncAllPlaylists(context.Background())
	if err != nil {
		t.Fatalf("SyncAllPlaylists() error = %v", err)
	}
	if summary.Errors != 1 {
		t.Errorf("errors = %d, want 1", summary.Errors)
	}
	if summary.Added != 1 {
		t.Errorf("added = %d, want 1 from the healthy playlist", summary.Added)
	}
}

func TestSyncOverlapGuard(t *testing.T) {
	block := make(chan struct{})
	fetcher := &fakeFetcher{block: block}
	engine := &SyncEngine{Fetcher: fetcher, Store: &fakeStore{}, Playlists: testPlaylists()[:1]}

	firstDone := make(chan error, 1)
	go func() {
		_, err := engine.SyncAllPlaylists(context.Background())
		firstDone <- err
	}()

	// Wait until the first run is inside the fetcher.
	deadline := time.After(2 * time.Second)
	for !engine.running.Load() {
		select {
		case <-deadline:
			t.Fatal("first sync run never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if _, err := engine.SyncAllPlaylists(context.Background()); !errors.Is(err, ErrSyncInProgress) {
		t.Errorf("overlapping run err = %v, want ErrSyncInProgress", err)
	}

	close(block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first run error = %v", err)
	}

	// The guard resets once the run finishes.
	if _, err := engine.SyncAllPlaylists(context.Background()); err != nil {
		t.Errorf("post-run sync err = %v, want nil", err)
	}
}

// raceStore simulates a concurrent writer sneaking a row in between the
// engine's existence check and its insert.
type raceStore struct {
	fakeStore
	raced bool
}

func (s *raceStore) FindSolution(ctx context.Context, contestID, videoID string) (*models.Solution, error) {
	if !s.raced {
		return nil, nil
	}
	return s.fakeStore.FindSolution(ctx, contestID, videoID)
}

func (s *raceStore) CreateSolution(ctx context.Context, solution *models.Solution) error {
	s.raced = true
	s.solutions = append(s.solutions, &models.Solution{
		ContestID:   solution.ContestID,
		VideoID:     solution.VideoID,
		Title:       "raced-in title",
		ContestName: solution.ContestName,
	})
	return gorm.ErrDuplicatedKey
}

func TestSyncDuplicateInsertRace(t *testing.T) {
	store := &raceStore{fakeStore: fakeStore{contests: []*models.Contest{
		storedContest("c-week-380", "Weekly Contest 380", models.PlatformLeetCode),
	}}}
	fetcher := &fakeFetcher{videos: map[string][]PlaylistVideo{
		"pl-leetcode": {video("v1", "Leetcode Weekly Contest 380 | All Problems")},
	}}
	engine := &SyncEngine{Fetcher: fetcher, Store: store, Playlists: testPlaylists()[:1]}

	summary, err := engine.SyncAllPlaylists(context.Background())
	if err != nil {
		t.Fatalf("SyncAllPlaylists() error = %v", err)
	}
	if summary.Added != 0 || summary.Updated != 1 {
		t.Errorf("summary = %+v, want the lost race downgraded to an update", summary)
	}
	if store.solutions[0].Title != "Leetcode Weekly Contest 380 | All Problems" {
		t.Errorf("raced row not refreshed: %q", store.solutions[0].Title)
	}
}
