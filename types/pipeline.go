package types

// GenerationOptions tune the article drafting stage.
type GenerationOptions struct {
	Length   string   `json:"length,omitempty"` // "short", "medium" (default), "long"
	Tone     string   `json:"tone,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// ProcessingStatus is an ephemeral progress notification for one stage
// transition. It is never persisted.
type ProcessingStatus struct {
	Stage                string  `json:"stage"`
	Progress             int     `json:"progress"` // 0-100
	Message              string  `json:"message"`
	EstimatedSecondsLeft float64 `json:"estimated_seconds_left,omitempty"`
}

// PipelineResult aggregates whichever artifacts were produced before a
// failure, or all four on success. It is constructed once per run and not
// retained by the pipeline afterward.
type PipelineResult struct {
	RunID            string           `json:"run_id"`
	Success          bool             `json:"success"`
	Error            string           `json:"error,omitempty"`
	VideoMetadata    *VideoMetadata   `json:"video_metadata,omitempty"`
	Transcript       *Transcript      `json:"transcript,omitempty"`
	Analysis         *ContentAnalysis `json:"analysis,omitempty"`
	Article          *Article         `json:"article,omitempty"`
	ProcessingTimeMs int64            `json:"processing_time_ms"`
}

// Stream event types emitted on the SSE transport.
const (
	EventProgress = "progress"
	EventResult   = "result"
	EventError    = "error"
)

// StreamEvent is the JSON payload of one SSE frame. Progress events carry
// Status; result events carry Result; error events carry Error plus the
// partial Result accumulated before the failure.
type StreamEvent struct {
	Type   string            `json:"type"`
	Status *ProcessingStatus `json:"status,omitempty"`
	Result *PipelineResult   `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}
