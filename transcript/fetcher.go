package transcript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"vidscribe/metadata"
	"vidscribe/types"
)

const fetchTimeout = 30 * time.Second

// Fetcher retrieves timed caption transcripts for YouTube videos by
// scraping the watch page for caption tracks and downloading the
// timedtext document.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a transcript fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch returns the transcript for the video behind rawURL. language is an
// optional BCP-47 code; when empty the best available track is used.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, language string) (*types.Transcript, error) {
	videoID, err := metadata.ParseVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	page, err := f.get(ctx, metadata.WatchURL(videoID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch page: %w", err)
	}

	tracks, err := extractCaptionTracks(string(page))
	if err != nil {
		return nil, fmt.Errorf("no captions available for %s: %w", videoID, err)
	}

	track := selectTrack(tracks, language)

	body, err := f.get(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timedtext: %w", err)
	}

	segments, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}

	return &types.Transcript{
		VideoID:  videoID,
		Language: track.LanguageCode,
		Segments: segments,
	}, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
