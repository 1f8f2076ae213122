package transcript

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"strings"

	"vidscribe/types"
)

// captionTrack mirrors the player-response entries describing available
// caption tracks for a video.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

// extractCaptionTracks locates the captionTracks array inside a watch-page
// player response and decodes it.
func extractCaptionTracks(page string) ([]captionTrack, error) {
	const marker = `"captionTracks":`
	idx := strings.Index(page, marker)
	if idx < 0 {
		return nil, fmt.Errorf("no caption tracks found")
	}

	var tracks []captionTrack
	dec := json.NewDecoder(strings.NewReader(page[idx+len(marker):]))
	if err := dec.Decode(&tracks); err != nil {
		return nil, fmt.Errorf("failed to decode caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks found")
	}
	return tracks, nil
}

// selectTrack picks the best caption track: requested language first,
// preferring manual captions over ASR, then any manual track, then anything.
func selectTrack(tracks []captionTrack, language string) captionTrack {
	if language != "" {
		for _, t := range tracks {
			if t.LanguageCode == language && t.Kind != "asr" {
				return t
			}
		}
		for _, t := range tracks {
			if t.LanguageCode == language {
				return t
			}
		}
	}
	for _, t := range tracks {
		if t.Kind != "asr" {
			return t
		}
	}
	return tracks[0]
}

// timedText mirrors the timedtext XML document served at a track's base URL.
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Body     string  `xml:",chardata"`
	} `xml:"text"`
}

// parseTimedText converts a timedtext XML body into transcript segments.
// Empty caption lines are dropped.
func parseTimedText(data []byte) ([]types.TranscriptSegment, error) {
	var doc timedText
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse timedtext: %w", err)
	}

	segments := make([]types.TranscriptSegment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		if text == "" {
			continue
		}
		segments = append(segments, types.TranscriptSegment{
			Start:    t.Start,
			Duration: t.Duration,
			Text:     text,
		})
	}
	return segments, nil
}
