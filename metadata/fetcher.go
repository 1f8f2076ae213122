package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"vidscribe/types"

	readability "github.com/go-shiori/go-readability"
)

const (
	oembedEndpoint     = "https://www.youtube.com/oembed"
	enrichmentTimeout  = 30 * time.Second
	oembedFetchTimeout = 15 * time.Second
)

// Fetcher resolves a YouTube URL into VideoMetadata. The Data API is used
// when YOUTUBE_API_KEY is set; otherwise the public oEmbed endpoint serves
// as fallback, enriched with a watch-page excerpt via readability.
type Fetcher struct {
	apiKey     string
	httpClient *http.Client
	oembedURL  string
	enrich     bool
}

// NewFetcher creates a metadata fetcher configured from the environment.
func NewFetcher() *Fetcher {
	return &Fetcher{
		apiKey:     os.Getenv("YOUTUBE_API_KEY"),
		httpClient: &http.Client{Timeout: oembedFetchTimeout},
		oembedURL:  oembedEndpoint,
		enrich:     true,
	}
}

// Fetch returns metadata for the video behind rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*types.VideoMetadata, error) {
	videoID, err := ParseVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	if f.apiKey != "" {
		api, err := newDataAPIClient(ctx, f.apiKey)
		if err == nil {
			meta, err := api.Fetch(ctx, videoID)
			if err == nil {
				return meta, nil
			}
			log.Printf("Data API lookup failed for %s, falling back to oEmbed: %v", videoID, err)
		}
	}

	return f.fetchOEmbed(ctx, videoID)
}

// oembedResponse is the subset of YouTube's oEmbed payload we use.
type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func (f *Fetcher) fetchOEmbed(ctx context.Context, videoID string) (*types.VideoMetadata, error) {
	watchURL := WatchURL(videoID)
	endpoint := fmt.Sprintf("%s?url=%s&format=json", f.oembedURL, url.QueryEscape(watchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("oembed returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode oembed response: %w", err)
	}

	meta := &types.VideoMetadata{
		VideoID:      videoID,
		URL:          watchURL,
		Title:        parsed.Title,
		ChannelTitle: parsed.AuthorName,
		ThumbnailURL: parsed.ThumbnailURL,
		FetchedAt:    time.Now(),
	}

	// oEmbed carries no description; pull an excerpt from the watch page.
	if f.enrich {
		if excerpt := extractExcerpt(watchURL); excerpt != "" {
			meta.Description = excerpt
		}
	}

	return meta, nil
}

// extractExcerpt fetches the watch page and extracts a short description.
// Best effort: any failure returns an empty string.
func extractExcerpt(pageURL string) string {
	article, err := readability.FromURL(pageURL, enrichmentTimeout)
	if err != nil {
		log.Printf("readability extraction failed for %s: %v", pageURL, err)
		return ""
	}
	return article.Excerpt
}
