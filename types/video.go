package types

import (
	"strings"
	"time"
)

// VideoMetadata represents descriptive information for a single YouTube video.
// It is produced by the metadata service and immutable once returned.
type VideoMetadata struct {
	VideoID         string    `json:"video_id"`
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	ChannelTitle    string    `json:"channel_title,omitempty"`
	Description     string    `json:"description,omitempty"`
	DurationSeconds float64   `json:"duration_seconds"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	PublishedAt     time.Time `json:"published_at,omitempty"`
	ViewCount       uint64    `json:"view_count,omitempty"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// TranscriptSegment is one timed caption line.
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Transcript is the ordered sequence of caption segments for one video.
type Transcript struct {
	VideoID  string              `json:"video_id"`
	Language string              `json:"language,omitempty"`
	Segments []TranscriptSegment `json:"segments"`
}

// FullText joins all segment texts into a single space-separated string.
func (t *Transcript) FullText() string {
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		text := strings.TrimSpace(seg.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// WordCount returns the number of whitespace-separated words across all segments.
func (t *Transcript) WordCount() int {
	return len(strings.Fields(t.FullText()))
}

// TotalDuration returns the end time of the last segment in seconds.
func (t *Transcript) TotalDuration() float64 {
	if len(t.Segments) == 0 {
		return 0
	}
	last := t.Segments[len(t.Segments)-1]
	return last.Start + last.Duration
}
