package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vidscribe/types"
)

// fakeChat returns a canned response and records the last prompt.
type fakeChat struct {
	response string
	err      error
	preamble string
	message  string
}

func (f *fakeChat) Chat(ctx context.Context, preamble, message string) (string, error) {
	f.preamble = preamble
	f.message = message
	return f.response, f.err
}

func (f *fakeChat) ModelName() string { return "fake-model" }

func sampleTranscript() *types.Transcript {
	return &types.Transcript{
		VideoID:  "dQw4w9WgXcQ",
		Language: "en",
		Segments: []types.TranscriptSegment{
			{Start: 0, Duration: 2, Text: "welcome to the channel"},
			{Start: 2, Duration: 3, Text: "today we talk about Go"},
		},
	}
}

const validAnalysisJSON = `{
	"topics": ["go", "testing"],
	"key_points": ["tests matter"],
	"summary": "A video about Go testing.",
	"outline": [{"heading": "Why test", "hint": "motivation"}]
}`

func TestAnalyzeSuccess(t *testing.T) {
	chat := &fakeChat{response: validAnalysisJSON}
	result, err := NewAnalyzer(chat).Analyze(context.Background(), sampleTranscript())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if len(result.Topics) != 2 || result.Topics[0] != "go" {
		t.Errorf("topics = %v", result.Topics)
	}
	if len(result.Outline) != 1 || result.Outline[0].Heading != "Why test" {
		t.Errorf("outline = %+v", result.Outline)
	}
	if result.WordCount != sampleTranscript().WordCount() {
		t.Errorf("word count = %d", result.WordCount)
	}
	if !strings.Contains(chat.message, "welcome to the channel") {
		t.Error("prompt missing transcript text")
	}
}

func TestAnalyzeStripsCodeFences(t *testing.T) {
	chat := &fakeChat{response: "```json\n" + validAnalysisJSON + "\n```"}
	if _, err := NewAnalyzer(chat).Analyze(context.Background(), sampleTranscript()); err != nil {
		t.Fatalf("fenced response should parse: %v", err)
	}
}

func TestAnalyzeEmptyTranscript(t *testing.T) {
	a := NewAnalyzer(&fakeChat{response: validAnalysisJSON})
	if _, err := a.Analyze(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil transcript")
	}
	if _, err := a.Analyze(context.Background(), &types.Transcript{}); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}

func TestAnalyzeChatFailure(t *testing.T) {
	chat := &fakeChat{err: errors.New("api quota exceeded")}
	if _, err := NewAnalyzer(chat).Analyze(context.Background(), sampleTranscript()); err == nil {
		t.Fatal("expected error when chat fails")
	}
}

func TestAnalyzeRejectsEmptyAnalysis(t *testing.T) {
	chat := &fakeChat{response: `{"topics": [], "key_points": [], "summary": "x"}`}
	if _, err := NewAnalyzer(chat).Analyze(context.Background(), sampleTranscript()); err == nil {
		t.Fatal("expected error for response without topics or key points")
	}
}

func TestAnalyzeRejectsNonJSON(t *testing.T) {
	chat := &fakeChat{response: "I cannot analyze this video."}
	if _, err := NewAnalyzer(chat).Analyze(context.Background(), sampleTranscript()); err == nil {
		t.Fatal("expected error for prose response")
	}
}
