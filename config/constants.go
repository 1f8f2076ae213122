package config

import "time"

// Pipeline stage names, in execution order.
const (
	StageValidation    = "validation"
	StageMetadata      = "metadata"
	StageTranscription = "transcription"
	StageAnalysis      = "analysis"
	StageGeneration    = "generation"
	StageComplete      = "complete"
	StageError         = "error"
)

// Progress percentages emitted per stage transition. Stage-completion and
// next-stage-start markers are distinct events, so values interleave.
const (
	ProgressValidation         = 0
	ProgressMetadataDone       = 20
	ProgressTranscriptionStart = 25
	ProgressTranscriptionDone  = 50
	ProgressAnalysisStart      = 55
	ProgressAnalysisDone       = 75
	ProgressGenerationStart    = 80
	ProgressComplete           = 100
)

// Stage Client Constants
const (
	// StageRequestTimeout bounds a single outbound stage call. The pipeline
	// itself carries no deadline.
	StageRequestTimeout = 30 * time.Second
)

// Generation Constants
const (
	// DefaultArticleLength is used when options omit a length
	DefaultArticleLength = "medium"

	// MaxTranscriptPromptChars caps how much transcript text is inlined
	// into an LLM prompt
	MaxTranscriptPromptChars = 24000

	// DefaultChatModel is the Cohere chat model for analysis and generation
	DefaultChatModel = "command-r-plus-08-2024"
)

// LengthTargets maps article length presets to target word counts.
var LengthTargets = map[string]int{
	"short":  500,
	"medium": 1000,
	"long":   1800,
}

// Cache Constants
const (
	// CacheTTL bounds how long metadata and transcripts stay in Redis
	CacheTTL = 24 * time.Hour
)

// Channel Feed Constants
const (
	// ChannelFeedURL is YouTube's public RSS feed for a channel's uploads
	ChannelFeedURL = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

	// DefaultFeedCount limits how many recent uploads are listed
	DefaultFeedCount = 15
)

// Kafka Constants
const (
	// ArticlesTopic receives one event per successfully generated article
	ArticlesTopic = "articles.generated"
)
