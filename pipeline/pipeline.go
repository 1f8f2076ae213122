package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"vidscribe/client"
	"vidscribe/config"
	"vidscribe/types"

	"github.com/google/uuid"
)

// Stages describes the minimal stage-client functionality required by the
// pipeline. Satisfied by *client.StageClient; tests supply fakes.
type Stages interface {
	FetchMetadata(ctx context.Context, videoURL string) client.MetadataResult
	FetchTranscript(ctx context.Context, videoURL string) client.TranscriptResult
	AnalyzeContent(ctx context.Context, transcript *types.Transcript) client.AnalysisResult
	GenerateArticle(ctx context.Context, req client.GenerateRequest) client.GenerateResult
}

// ProgressFunc receives one notification per stage transition.
type ProgressFunc func(types.ProcessingStatus)

// ProcessingPipeline sequences the four dependent stage calls for one video.
// Each run is fully isolated; concurrent runs share nothing.
type ProcessingPipeline struct {
	stages Stages
}

// New creates a pipeline over the given stage client.
func New(stages Stages) *ProcessingPipeline {
	return &ProcessingPipeline{stages: stages}
}

// Process executes the complete pipeline for one video URL.
//
// Stages run strictly in sequence: metadata, transcript, analysis,
// generation. Every failure is terminal for the run and the returned result
// carries whichever artifacts earlier stages already produced. onProgress
// may be nil.
func (p *ProcessingPipeline) Process(ctx context.Context, videoURL string, options types.GenerationOptions, onProgress ProgressFunc) (result *types.PipelineResult) {
	start := time.Now()

	result = &types.PipelineResult{RunID: uuid.New().String()}

	emit := func(stage string, progress int, message string) {
		if onProgress != nil {
			onProgress(types.ProcessingStatus{Stage: stage, Progress: progress, Message: message})
		}
	}

	fail := func(message string) *types.PipelineResult {
		result.Success = false
		result.Error = message
		result.ProcessingTimeMs = time.Since(start).Milliseconds()
		return result
	}

	// Single blanket error boundary for the whole run. No stage retries.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pipeline run %s panicked: %v", result.RunID, r)
			emit(config.StageError, 0, "Processing failed")
			result = fail(fmt.Sprintf("Processing failed: %v", r))
		}
	}()

	emit(config.StageValidation, config.ProgressValidation, "Validating YouTube URL...")

	// Stage 1: metadata. Nothing to carry forward on failure.
	metaRes := p.stages.FetchMetadata(ctx, videoURL)
	if !metaRes.Success {
		return fail(fmt.Sprintf("metadata fetch failed: %s", metaRes.Error))
	}
	result.VideoMetadata = metaRes.Metadata

	emit(config.StageMetadata, config.ProgressMetadataDone, "Video metadata retrieved")
	emit(config.StageTranscription, config.ProgressTranscriptionStart, "Fetching transcript...")

	// Stage 2: transcript. Failure keeps the metadata already obtained.
	trRes := p.stages.FetchTranscript(ctx, videoURL)
	if !trRes.Success {
		return fail(fmt.Sprintf("transcript fetch failed: %s", trRes.Error))
	}

	// An apparent success with an empty payload must not reach analysis.
	if trRes.Transcript == nil || len(trRes.Transcript.Segments) == 0 {
		return fail("no transcript data available")
	}
	result.Transcript = trRes.Transcript

	emit(config.StageTranscription, config.ProgressTranscriptionDone,
		fmt.Sprintf("Transcript retrieved (%d segments)", len(trRes.Transcript.Segments)))
	emit(config.StageAnalysis, config.ProgressAnalysisStart, "Analyzing content...")

	// Stage 3: analysis. Failure keeps metadata + transcript.
	anRes := p.stages.AnalyzeContent(ctx, trRes.Transcript)
	if !anRes.Success {
		return fail(fmt.Sprintf("content analysis failed: %s", anRes.Error))
	}
	result.Analysis = anRes.Analysis

	emit(config.StageAnalysis, config.ProgressAnalysisDone, "Content analysis complete")

	// Second defensive check before the most expensive stage.
	if result.Analysis == nil || result.VideoMetadata == nil || result.Transcript == nil {
		return fail("missing required data for article generation")
	}

	emit(config.StageGeneration, config.ProgressGenerationStart, "Generating article...")

	// Stage 4: generation. Failure keeps metadata + transcript + analysis.
	genRes := p.stages.GenerateArticle(ctx, client.GenerateRequest{
		Analysis:      result.Analysis,
		VideoMetadata: result.VideoMetadata,
		Transcript:    result.Transcript,
		Options:       options,
	})
	if !genRes.Success {
		return fail(fmt.Sprintf("article generation failed: %s", genRes.Error))
	}
	result.Article = genRes.Article

	emit(config.StageComplete, config.ProgressComplete, "Article generation complete")

	result.Success = true
	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	return result
}
