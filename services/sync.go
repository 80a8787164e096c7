package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sync/atomic"

	"api/config"
	"api/metrics"
	"api/models"

	"gorm.io/gorm"
)

// ErrSyncInProgress is returned when a sync run is requested while another
// one is still executing. Overlapping runs are skipped, not queued.
var ErrSyncInProgress = errors.New("playlist sync already running")

// VideoPattern maps a playlist video title onto a platform and contest type.
type VideoPattern struct {
	Regex     *regexp.Regexp
	Platform  models.Platform
	TypeLabel string
}

// Playlist is one configured solution-video playlist with its ordered title
// patterns. The first matching pattern wins.
type Playlist struct {
	Name     string
	ID       string
	Patterns []VideoPattern
}

// SyncSummary aggregates the outcome of one sync run across all playlists.
type SyncSummary struct {
	Processed int `json:"processed"`
	Added     int `json:"added"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// DefaultPlaylists builds the playlist table from the configured playlist
// ids. The Educational pattern precedes the plain Round pattern so that
// "Educational Codeforces Round N" titles are not swallowed by the broader
// round match.
func DefaultPlaylists() []Playlist {
	return []Playlist{
		{
			Name: "LEETCODE",
			ID:   config.LeetCodePlaylistID,
			Patterns: []VideoPattern{
				{Regex: regexp.MustCompile(`(?i)Leetcode Weekly Contest (\d+)`), Platform: models.PlatformLeetCode, TypeLabel: "Weekly Contest"},
				{Regex: regexp.MustCompile(`(?i)Leetcode Biweekly Contest (\d+)`), Platform: models.PlatformLeetCode, TypeLabel: "Biweekly Contest"},
			},
		},
		{
			Name: "CODEFORCES",
			ID:   config.CodeforcesPlaylistID,
			Patterns: []VideoPattern{
				{Regex: regexp.MustCompile(`(?i)Educational Codeforces Round (\d+)`), Platform: models.PlatformCodeforces, TypeLabel: "Educational Round"},
				{Regex: regexp.MustCompile(`(?i)Codeforces Round (\d+)`), Platform: models.PlatformCodeforces, TypeLabel: "Round"},
			},
		},
		{
			Name: "CODECHEF",
			ID:   config.CodeChefPlaylistID,
			Patterns: []VideoPattern{
				{Regex: regexp.MustCompile(`(?i)Codechef Starters (\d+)`), Platform: models.PlatformCodeChef, TypeLabel: "Starters"},
			},
		},
	}
}

// videoMatch is the outcome of matching a video title against a playlist's
// pattern table.
type videoMatch struct {
	Platform  models.Platform
	TypeLabel string
	Number    string
}

// MatchVideoTitle runs the ordered pattern list over a title; the first
// pattern capturing a contest number wins.
func MatchVideoTitle(title string, patterns []VideoPattern) (videoMatch, bool) {
	for _, p := range patterns {
		if m := p.Regex.FindStringSubmatch(title); m != nil && m[1] != "" {
			return videoMatch{Platform: p.Platform, TypeLabel: p.TypeLabel, Number: m[1]}, true
		}
	}
	return videoMatch{}, false
}

// ContestNamePattern reconstructs the canonical stored-contest name pattern
// for a matched video.
func ContestNamePattern(match videoMatch) (string, error) {
	switch match.Platform {
	case models.PlatformLeetCode:
		return fmt.Sprintf("%s %s", match.TypeLabel, match.Number), nil
	case models.PlatformCodeforces:
		if match.TypeLabel == "Round" {
			return fmt.Sprintf("Codeforces Round #%s", match.Number), nil
		}
		return fmt.Sprintf("Educational Codeforces Round #%s", match.Number), nil
	case models.PlatformCodeChef:
		return fmt.Sprintf("CodeChef Starters %s", match.Number), nil
	default:
		return "", fmt.Errorf("no name pattern for platform %s", match.Platform)
	}
}

// SyncEngine reconciles YouTube playlist videos with stored contests.
// Playlists are processed sequentially, and videos within a playlist
// sequentially, so there are never concurrent upserts against the same
// contest.
type SyncEngine struct {
	Fetcher   PlaylistFetcher
	Store     ContestStore
	Playlists []Playlist

	running atomic.Bool
}

func NewSyncEngine(fetcher PlaylistFetcher, store ContestStore) *SyncEngine {
	return &SyncEngine{
		Fetcher:   fetcher,
		Store:     store,
		Playlists: DefaultPlaylists(),
	}
}

// SyncAllPlaylists runs one full sync pass over every configured playlist
// and returns the aggregate summary. One playlist's fetch failure is
// counted and does not abort the others. The whole operation is idempotent:
// re-running over unchanged playlists adds nothing and only refreshes
// existing solutions.
func (e *SyncEngine) SyncAllPlaylists(ctx context.Context) (SyncSummary, error) {
	if !e.running.CompareAndSwap(false, true) {
		metrics.SyncRuns.WithLabelValues("skipped_overlap").Inc()
		return SyncSummary{}, ErrSyncInProgress
	}
	defer e.running.Store(false)

	summary := SyncSummary{}
	for _, playlist := range e.Playlists {
		log.Printf("Syncing %s playlist", playlist.Name)

		videos, err := e.Fetcher.FetchPlaylistVideos(ctx, playlist.ID)
		if err != nil {
			log.Printf("Error fetching %s playlist: %v", playlist.Name, err)
			summary.Errors++
			continue
		}
		summary.Processed += len(videos)

		for _, video := range videos {
			outcome := e.syncVideo(ctx, playlist, video, &summary)
			metrics.SyncVideos.WithLabelValues(outcome).Inc()
		}
	}

	metrics.SyncRuns.WithLabelValues("completed").Inc()
	return summary, nil
}

func (e *SyncEngine) syncVideo(ctx context.Context, playlist Playlist, video PlaylistVideo, summary *SyncSummary) string {
	match, ok := MatchVideoTitle(video.Title, playlist.Patterns)
	if !ok {
		log.Printf("No contest pattern matched video title: %s", video.Title)
		summary.Skipped++
		return "unmatched"
	}

	pattern, err := ContestNamePattern(match)
	if err != nil {
		summary.Skipped++
		return "unmatched"
	}

	contest, err := e.Store.FindContestByNamePattern(ctx, match.Platform, pattern)
	if err != nil {
		log.Printf("Error finding contest for video %s: %v", video.Title, err)
		summary.Errors++
		return "error"
	}
	if contest == nil {
		log.Printf("No matching contest found for video: %s", video.Title)
		summary.Skipped++
		return "no_contest"
	}

	created, err := e.upsertSolution(ctx, contest, video)
	if err != nil {
		log.Printf("Error upserting solution for video %s: %v", video.Title, err)
		summary.Errors++
		return "error"
	}
	if created {
		summary.Added++
		return "added"
	}
	summary.Updated++
	return "updated"
}

// upsertSolution creates or refreshes the solution for (contest, video),
// keyed on the unique (contest_id, video_id) pair. A duplicate-key insert,
// raced in by a concurrent writer, is treated as "already exists" and
// downgraded to an update.
func (e *SyncEngine) upsertSolution(ctx context.Context, contest *models.Contest, video PlaylistVideo) (bool, error) {
	existing, err := e.Store.FindSolution(ctx, contest.ID, video.VideoID)
	if err != nil {
		return false, err
	}

	if existing == nil {
		solution := &models.Solution{
			ContestID:    contest.ID,
			VideoID:      video.VideoID,
			Platform:     contest.Platform,
			ContestName:  contest.Name,
			Title:        video.Title,
			Description:  video.Description,
			ThumbnailURL: video.ThumbnailURL,
			PublishedAt:  video.PublishedAt,
		}
		err = e.Store.CreateSolution(ctx, solution)
		if err == nil {
			log.Printf("Added solution %q for contest %q", solution.Title, contest.Name)
			return true, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, err
		}
		// Lost the insert race; fall through to the update path.
		existing, err = e.Store.FindSolution(ctx, contest.ID, video.VideoID)
		if err != nil {
			return false, err
		}
		if existing == nil {
			return false, fmt.Errorf("solution for contest %s video %s vanished after duplicate insert", contest.ID, video.VideoID)
		}
	}

	existing.Title = video.Title
	existing.Description = video.Description
	existing.ThumbnailURL = video.ThumbnailURL
	existing.PublishedAt = video.PublishedAt
	if err := e.Store.UpdateSolution(ctx, existing); err != nil {
		return false, err
	}
	log.Printf("Updated solution %q", existing.Title)
	return false, nil
}
