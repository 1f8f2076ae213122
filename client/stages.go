package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"vidscribe/types"
)

// StageResult is the shared outcome shape for every stage call. Transport
// failures and remote-reported errors both collapse into the Error string;
// no distinction is preserved at this layer.
type StageResult struct {
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// MetadataResult carries the metadata stage outcome.
type MetadataResult struct {
	StageResult
	Metadata *types.VideoMetadata `json:"metadata,omitempty"`
}

// TranscriptResult carries the transcript stage outcome.
type TranscriptResult struct {
	StageResult
	Transcript *types.Transcript `json:"transcript,omitempty"`
}

// AnalysisResult carries the analysis stage outcome.
type AnalysisResult struct {
	StageResult
	Analysis *types.ContentAnalysis `json:"analysis,omitempty"`
}

// GenerateResult carries the generation stage outcome.
type GenerateResult struct {
	StageResult
	Article *types.Article `json:"article,omitempty"`
}

// GenerateRequest is the combined payload for the generation stage.
type GenerateRequest struct {
	Analysis      *types.ContentAnalysis  `json:"analysis"`
	VideoMetadata *types.VideoMetadata    `json:"video_metadata"`
	Transcript    *types.Transcript       `json:"transcript"`
	Options       types.GenerationOptions `json:"options"`
}

// FetchMetadata calls POST /api/metadata with the video URL.
func (c *StageClient) FetchMetadata(ctx context.Context, videoURL string) MetadataResult {
	start := time.Now()

	payload := map[string]string{"url": videoURL}
	var resp struct {
		Metadata *types.VideoMetadata `json:"metadata"`
	}

	err := c.doJSONRequest(ctx, http.MethodPost, "/api/metadata", payload, &resp)
	if err != nil {
		return MetadataResult{StageResult: failed(err, start)}
	}

	return MetadataResult{StageResult: succeeded(start), Metadata: resp.Metadata}
}

// FetchTranscript calls GET /api/transcript with the video URL as a query param.
func (c *StageClient) FetchTranscript(ctx context.Context, videoURL string) TranscriptResult {
	start := time.Now()

	path := "/api/transcript?url=" + url.QueryEscape(videoURL)
	var resp struct {
		Data *types.Transcript `json:"data"`
	}

	err := c.doJSONRequest(ctx, http.MethodGet, path, nil, &resp)
	if err != nil {
		return TranscriptResult{StageResult: failed(err, start)}
	}

	return TranscriptResult{StageResult: succeeded(start), Transcript: resp.Data}
}

// AnalyzeContent calls POST /api/analyze with the transcript.
func (c *StageClient) AnalyzeContent(ctx context.Context, transcript *types.Transcript) AnalysisResult {
	start := time.Now()

	payload := map[string]interface{}{"transcript": transcript}
	var resp struct {
		Analysis *types.ContentAnalysis `json:"analysis"`
	}

	err := c.doJSONRequest(ctx, http.MethodPost, "/api/analyze", payload, &resp)
	if err != nil {
		return AnalysisResult{StageResult: failed(err, start)}
	}

	return AnalysisResult{StageResult: succeeded(start), Analysis: resp.Analysis}
}

// GenerateArticle calls POST /api/generate with analysis, metadata,
// transcript, and generation options.
func (c *StageClient) GenerateArticle(ctx context.Context, req GenerateRequest) GenerateResult {
	start := time.Now()

	var resp struct {
		Article *types.Article `json:"article"`
	}

	err := c.doJSONRequest(ctx, http.MethodPost, "/api/generate", req, &resp)
	if err != nil {
		return GenerateResult{StageResult: failed(err, start)}
	}

	return GenerateResult{StageResult: succeeded(start), Article: resp.Article}
}

func succeeded(start time.Time) StageResult {
	return StageResult{Success: true, Duration: time.Since(start)}
}

func failed(err error, start time.Time) StageResult {
	return StageResult{Success: false, Error: err.Error(), Duration: time.Since(start)}
}
