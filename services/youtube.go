package services

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// PlaylistVideo is the slice of YouTube playlist-item data the sync engine
// cares about.
type PlaylistVideo struct {
	VideoID      string
	Title        string
	Description  string
	ThumbnailURL string
	PublishedAt  time.Time
}

// PlaylistFetcher fetches all videos of a playlist. Implemented by
// YouTubeClient in production and by fakes in tests.
type PlaylistFetcher interface {
	FetchPlaylistVideos(ctx context.Context, playlistID string) ([]PlaylistVideo, error)
}

// YouTubeClient wraps the YouTube Data API v3 playlist-items endpoint.
type YouTubeClient struct {
	service *youtube.Service
}

func NewYouTubeClient(ctx context.Context, apiKey string) (*YouTubeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube api key required")
	}
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &YouTubeClient{service: service}, nil
}

// FetchPlaylistVideos pages through the playlist and returns every video's
// snippet and content details.
func (y *YouTubeClient) FetchPlaylistVideos(ctx context.Context, playlistID string) ([]PlaylistVideo, error) {
	var videos []PlaylistVideo

	pageToken := ""
	for {
		call := y.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(50).
			PageToken(pageToken).
			Context(ctx)

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list playlist %s: %w", playlistID, err)
		}

		for _, item := range resp.Items {
			video := PlaylistVideo{}
			if item.ContentDetails != nil {
				video.VideoID = item.ContentDetails.VideoId
			}
			if item.Snippet != nil {
				video.Title = item.Snippet.Title
				video.Description = item.Snippet.Description
				video.ThumbnailURL = pickThumbnail(item.Snippet.Thumbnails)
				if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
					video.PublishedAt = t
				}
			}
			videos = append(videos, video)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return videos, nil
}

// pickThumbnail prefers the high resolution thumbnail and falls back to the
// default one.
func pickThumbnail(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	if thumbnails.High != nil {
		return thumbnails.High.Url
	}
	if thumbnails.Default != nil {
		return thumbnails.Default.Url
	}
	return ""
}
