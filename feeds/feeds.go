package feeds

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"vidscribe/config"
	"vidscribe/metadata"
)

// VideoEntry is one upload listed in a channel feed.
type VideoEntry struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	ChannelTitle string    `json:"channel_title,omitempty"`
	PublishedAt  time.Time `json:"published_at,omitempty"`
}

// FetchChannelUploads retrieves and parses a channel's public uploads feed,
// returning up to maxCount recent videos.
func FetchChannelUploads(ctx context.Context, channelID string, maxCount int) ([]VideoEntry, error) {
	if maxCount <= 0 {
		maxCount = config.DefaultFeedCount
	}

	feedURL := fmt.Sprintf(config.ChannelFeedURL, channelID)
	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel feed: %w", err)
	}

	return collectEntries(feed, maxCount), nil
}

// collectEntries converts feed items into video entries, skipping anything
// without a parseable video link.
func collectEntries(feed *gofeed.Feed, maxCount int) []VideoEntry {
	channelTitle := feed.Title

	entries := make([]VideoEntry, 0, min(len(feed.Items), maxCount))
	for _, item := range feed.Items {
		if len(entries) >= maxCount {
			break
		}

		videoID, err := metadata.ParseVideoID(item.Link)
		if err != nil {
			continue
		}

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		entries = append(entries, VideoEntry{
			VideoID:      videoID,
			Title:        item.Title,
			URL:          item.Link,
			ChannelTitle: channelTitle,
			PublishedAt:  publishedAt,
		})
	}

	return entries
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
