package types

// OutlineItem is a suggested article section derived from transcript analysis.
type OutlineItem struct {
	Heading string `json:"heading"`
	Hint    string `json:"hint,omitempty"`
}

// ContentAnalysis holds the insights extracted from a transcript.
// It exists only after the analysis stage succeeds and is consumed
// exclusively by article generation.
type ContentAnalysis struct {
	Topics    []string      `json:"topics"`
	KeyPoints []string      `json:"key_points"`
	Summary   string        `json:"summary"`
	Outline   []OutlineItem `json:"outline,omitempty"`
	WordCount int           `json:"word_count"`
}
