package metadata

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"vidscribe/types"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// dataAPIClient fetches metadata through the YouTube Data API v3.
type dataAPIClient struct {
	service *youtube.Service
}

func newDataAPIClient(ctx context.Context, apiKey string) (*dataAPIClient, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &dataAPIClient{service: service}, nil
}

// Fetch retrieves snippet, duration, and statistics for one video ID.
func (c *dataAPIClient) Fetch(ctx context.Context, videoID string) (*types.VideoMetadata, error) {
	call := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).Id(videoID)
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("videos.list failed: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", videoID)
	}

	item := resp.Items[0]
	meta := &types.VideoMetadata{
		VideoID:   videoID,
		URL:       WatchURL(videoID),
		FetchedAt: time.Now(),
	}

	if item.Snippet != nil {
		meta.Title = item.Snippet.Title
		meta.ChannelTitle = item.Snippet.ChannelTitle
		meta.Description = item.Snippet.Description
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			meta.PublishedAt = t
		}
		if item.Snippet.Thumbnails != nil {
			if item.Snippet.Thumbnails.High != nil {
				meta.ThumbnailURL = item.Snippet.Thumbnails.High.Url
			} else if item.Snippet.Thumbnails.Default != nil {
				meta.ThumbnailURL = item.Snippet.Thumbnails.Default.Url
			}
		}
	}

	if item.ContentDetails != nil {
		meta.DurationSeconds = parseISODuration(item.ContentDetails.Duration)
	}

	if item.Statistics != nil {
		meta.ViewCount = item.Statistics.ViewCount
	}

	return meta, nil
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts an ISO-8601 duration like "PT1H2M3S" to seconds.
// Returns 0 for anything it cannot parse.
func parseISODuration(s string) float64 {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(defaultZero(m[1]))
	minutes, _ := strconv.Atoi(defaultZero(m[2]))
	seconds, _ := strconv.Atoi(defaultZero(m[3]))
	return float64(hours*3600 + minutes*60 + seconds)
}

func defaultZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
