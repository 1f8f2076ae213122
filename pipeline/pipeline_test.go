package pipeline

import (
	"context"
	"strings"
	"testing"

	"vidscribe/client"
	"vidscribe/config"
	"vidscribe/types"
)

// fakeStages scripts each stage call. Zero values mean "succeed with a
// canned artifact"; setting a fail field makes that stage report an error,
// and panicStage makes it panic instead.
type fakeStages struct {
	failMetadata    string
	failTranscript  string
	failAnalysis    string
	failGenerate    string
	panicStage      string
	emptyTranscript bool

	calls []string
}

func sampleMetadata() *types.VideoMetadata {
	return &types.VideoMetadata{
		VideoID:      "dQw4w9WgXcQ",
		Title:        "Test Video",
		ChannelTitle: "Test Channel",
	}
}

func sampleTranscript() *types.Transcript {
	return &types.Transcript{
		VideoID:  "dQw4w9WgXcQ",
		Language: "en",
		Segments: []types.TranscriptSegment{
			{Start: 0, Duration: 2, Text: "hello"},
			{Start: 2, Duration: 3, Text: "world"},
		},
	}
}

func sampleAnalysis() *types.ContentAnalysis {
	return &types.ContentAnalysis{
		Topics:    []string{"testing"},
		KeyPoints: []string{"it works"},
		Summary:   "a test",
	}
}

func sampleArticle() *types.Article {
	return &types.Article{
		Title: "Test Article",
		Sections: []types.ArticleSection{
			{Heading: "Intro", Content: "body"},
		},
	}
}

func (f *fakeStages) FetchMetadata(ctx context.Context, videoURL string) client.MetadataResult {
	f.calls = append(f.calls, "metadata")
	if f.panicStage == "metadata" {
		panic("metadata exploded")
	}
	if f.failMetadata != "" {
		return client.MetadataResult{StageResult: client.StageResult{Error: f.failMetadata}}
	}
	return client.MetadataResult{
		StageResult: client.StageResult{Success: true},
		Metadata:    sampleMetadata(),
	}
}

func (f *fakeStages) FetchTranscript(ctx context.Context, videoURL string) client.TranscriptResult {
	f.calls = append(f.calls, "transcript")
	if f.panicStage == "transcript" {
		panic("transcript exploded")
	}
	if f.failTranscript != "" {
		return client.TranscriptResult{StageResult: client.StageResult{Error: f.failTranscript}}
	}
	if f.emptyTranscript {
		return client.TranscriptResult{
			StageResult: client.StageResult{Success: true},
			Transcript:  &types.Transcript{VideoID: "dQw4w9WgXcQ"},
		}
	}
	return client.TranscriptResult{
		StageResult: client.StageResult{Success: true},
		Transcript:  sampleTranscript(),
	}
}

func (f *fakeStages) AnalyzeContent(ctx context.Context, transcript *types.Transcript) client.AnalysisResult {
	f.calls = append(f.calls, "analysis")
	if f.panicStage == "analysis" {
		panic("analysis exploded")
	}
	if f.failAnalysis != "" {
		return client.AnalysisResult{StageResult: client.StageResult{Error: f.failAnalysis}}
	}
	return client.AnalysisResult{
		StageResult: client.StageResult{Success: true},
		Analysis:    sampleAnalysis(),
	}
}

func (f *fakeStages) GenerateArticle(ctx context.Context, req client.GenerateRequest) client.GenerateResult {
	f.calls = append(f.calls, "generate")
	if f.panicStage == "generate" {
		panic("generate exploded")
	}
	if f.failGenerate != "" {
		return client.GenerateResult{StageResult: client.StageResult{Error: f.failGenerate}}
	}
	if req.Analysis == nil || req.VideoMetadata == nil || req.Transcript == nil {
		return client.GenerateResult{StageResult: client.StageResult{Error: "missing inputs"}}
	}
	return client.GenerateResult{
		StageResult: client.StageResult{Success: true},
		Article:     sampleArticle(),
	}
}

func collectProgress(t *testing.T) (ProgressFunc, *[]types.ProcessingStatus) {
	t.Helper()
	var seen []types.ProcessingStatus
	return func(s types.ProcessingStatus) { seen = append(seen, s) }, &seen
}

func TestProcessSuccess(t *testing.T) {
	stages := &fakeStages{}
	onProgress, seen := collectProgress(t)

	result := New(stages).Process(context.Background(), "https://youtu.be/dQw4w9WgXcQ", types.GenerationOptions{}, onProgress)

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.RunID == "" {
		t.Fatal("expected a run ID")
	}
	if result.VideoMetadata == nil || result.Transcript == nil || result.Analysis == nil || result.Article == nil {
		t.Fatalf("expected all four artifacts, got %+v", result)
	}
	if result.ProcessingTimeMs < 0 {
		t.Fatalf("negative processing time: %d", result.ProcessingTimeMs)
	}

	wantCalls := []string{"metadata", "transcript", "analysis", "generate"}
	if len(stages.calls) != len(wantCalls) {
		t.Fatalf("stage calls = %v; want %v", stages.calls, wantCalls)
	}
	for i, call := range wantCalls {
		if stages.calls[i] != call {
			t.Fatalf("stage calls = %v; want %v", stages.calls, wantCalls)
		}
	}

	wantProgress := []int{
		config.ProgressValidation,
		config.ProgressMetadataDone,
		config.ProgressTranscriptionStart,
		config.ProgressTranscriptionDone,
		config.ProgressAnalysisStart,
		config.ProgressAnalysisDone,
		config.ProgressGenerationStart,
		config.ProgressComplete,
	}
	if len(*seen) != len(wantProgress) {
		t.Fatalf("got %d progress events; want %d", len(*seen), len(wantProgress))
	}
	for i, want := range wantProgress {
		if (*seen)[i].Progress != want {
			t.Errorf("progress[%d] = %d; want %d", i, (*seen)[i].Progress, want)
		}
	}
	last := (*seen)[len(*seen)-1]
	if last.Stage != config.StageComplete {
		t.Errorf("final stage = %q; want %q", last.Stage, config.StageComplete)
	}
}

func TestProcessProgressNeverDecreases(t *testing.T) {
	onProgress, seen := collectProgress(t)
	New(&fakeStages{}).Process(context.Background(), "https://youtu.be/x", types.GenerationOptions{}, onProgress)

	prev := -1
	for _, s := range *seen {
		if s.Progress < prev {
			t.Fatalf("progress went backwards: %d after %d", s.Progress, prev)
		}
		prev = s.Progress
	}
}

func TestProcessMetadataFailure(t *testing.T) {
	stages := &fakeStages{failMetadata: "video not found"}
	result := New(stages).Process(context.Background(), "https://youtu.be/x", types.GenerationOptions{}, nil)

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error != "metadata fetch failed: video not found" {
		t.Fatalf("error = %q", result.Error)
	}
	if result.VideoMetadata != nil || result.Transcript != nil || result.Analysis != nil || result.Article != nil {
		t.Fatalf("expected no artifacts, got %+v", result)
	}
	if len(stages.calls) != 1 {
		t.Fatalf("later stages ran after failure: %v", stages.calls)
	}
}

func TestProcessTranscriptFailureKeepsMetadata(t *testing.T) {
	stages := &fakeStages{failTranscript: "captions disabled"}
	result := New(stages).Process(context.Background(), "https://youtu.be/x", types.GenerationOptions{}, nil)

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error != "transcript fetch failed: captions disabled" {
		t.Fatalf("error = %q", result.Error)
	}
	if result.VideoMetadata == nil {
		t.Fatal("metadata from the completed stage should be kept")
	}
	if result.Transcript != nil || result.Analysis != nil || result.Article != nil {
		t.Fatalf("expected only metadata, got %+v", result)
	}
}

func TestProcessEmptyTranscriptGuard(t *testing.T) {
	stages := &fakeStages{emptyTranscript: true}
	result := New(stages).Process(context.Background(), "https://youtu.be/x", types.GenerationOptions{}, nil)

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error != "no transcript data available" {
		t.Fatalf("error = %q", result.Error)
	}
	if result.Transcript != nil {
		t.Fatal("empty transcript must not be kept as an artifact")
	}
	for _, call := range stages.calls {
		if call == "analysis" || call == "generate" {
			t.Fatalf("stage %q ran on empty transcript", call)
		}
	}
}

func TestProcessAnalysisFailureKeepsEarlierArtifacts(t *testing.T) {
	stages := &fakeStages{failAnalysis: "model overloaded"}
	result := New(stages).Process(context.Background(), "https://youtu.be/x", types.GenerationOptions{}, nil)

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error != "content analysis failed: model overloaded" {
		t.Fatalf("error = %q", result.Error)
	}
	if result.VideoMetadata == nil || result.Transcript == nil {
		t.Fatal("metadata and transcript should survive an analysis failure")
	}
	if result.Analysis != nil || result.Article != nil {
		t.Fatalf("expected no analysis artifacts, got %+v", result)
	}
}

func TestProcessGenerationFailureKeepsThreeArtifacts(t *testing.T) {
	stages := &fakeStages{failGenerate: "model refused"}
	result := New(stages).Process(context.Background(), "https://youtu.be/x", types.GenerationOptions{}, nil)

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error != "article generation failed: model refused" {
		t.Fatalf("error = %q", result.Error)
	}
	if result.VideoMetadata == nil || result.Transcript == nil || result.Analysis == nil {
		t.Fatal("all three earlier artifacts should survive a generation failure")
	}
	if result.Article != nil {
		t.Fatal("no article expected")
	}
}

func TestProcessStagePanicIsRecovered(t *testing.T) {
	for _, stage := range []string{"metadata", "transcript", "analysis", "generate"} {
		t.Run(stage, func(t *testing.T) {
			stages := &fakeStages{panicStage: stage}
			onProgress, seen := collectProgress(t)

			result := New(stages).Process(context.Background(), "https://youtu.be/x", types.GenerationOptions{}, onProgress)

			if result == nil {
				t.Fatal("panic escaped the pipeline")
			}
			if result.Success {
				t.Fatal("expected failure")
			}
			if !strings.HasPrefix(result.Error, "Processing failed: ") {
				t.Fatalf("error = %q; want Processing failed prefix", result.Error)
			}
			if result.RunID == "" {
				t.Fatal("run ID should survive the recovery")
			}

			last := (*seen)[len(*seen)-1]
			if last.Stage != config.StageError {
				t.Fatalf("final progress stage = %q; want %q", last.Stage, config.StageError)
			}
		})
	}
}

func TestProcessNilProgressCallback(t *testing.T) {
	result := New(&fakeStages{}).Process(context.Background(), "https://youtu.be/x", types.GenerationOptions{}, nil)
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
}
