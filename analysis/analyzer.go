package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vidscribe/config"
	"vidscribe/llm"
	"vidscribe/types"
)

const analyzerPreamble = "You analyze video transcripts for a blog-writing tool. " +
	"Always respond with a single JSON object and nothing else."

// Analyzer extracts topics, key points, and an outline from a transcript by
// prompting a chat model.
type Analyzer struct {
	chat llm.ChatClient
}

// NewAnalyzer creates an analyzer over the given chat client.
func NewAnalyzer(chat llm.ChatClient) *Analyzer {
	return &Analyzer{chat: chat}
}

// llmAnalysis is the JSON structure expected from the model.
type llmAnalysis struct {
	Topics    []string `json:"topics"`
	KeyPoints []string `json:"key_points"`
	Summary   string   `json:"summary"`
	Outline   []struct {
		Heading string `json:"heading"`
		Hint    string `json:"hint"`
	} `json:"outline"`
}

// Analyze derives ContentAnalysis from the transcript.
func (a *Analyzer) Analyze(ctx context.Context, transcript *types.Transcript) (*types.ContentAnalysis, error) {
	if transcript == nil || len(transcript.Segments) == 0 {
		return nil, errors.New("transcript is empty")
	}

	prompt := buildAnalysisPrompt(transcript)
	raw, err := a.chat.Chat(ctx, analyzerPreamble, prompt)
	if err != nil {
		return nil, fmt.Errorf("analysis chat failed: %w", err)
	}

	parsed, err := parseAnalysisResponse(raw)
	if err != nil {
		return nil, err
	}

	parsed.WordCount = transcript.WordCount()
	return parsed, nil
}

func buildAnalysisPrompt(transcript *types.Transcript) string {
	text := transcript.FullText()
	if len(text) > config.MaxTranscriptPromptChars {
		text = text[:config.MaxTranscriptPromptChars]
	}

	var b strings.Builder
	b.WriteString("Analyze the following video transcript.\n\n")
	b.WriteString("Return JSON with these fields:\n")
	b.WriteString(`  "topics": 3-6 short topic labels` + "\n")
	b.WriteString(`  "key_points": 4-8 one-sentence takeaways` + "\n")
	b.WriteString(`  "summary": one paragraph summarizing the video` + "\n")
	b.WriteString(`  "outline": 3-6 objects with "heading" and "hint" describing suggested article sections` + "\n\n")
	b.WriteString("Transcript:\n")
	b.WriteString(text)
	return b.String()
}

func parseAnalysisResponse(raw string) (*types.ContentAnalysis, error) {
	var parsed llmAnalysis
	if err := json.Unmarshal([]byte(llm.StripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	if len(parsed.Topics) == 0 && len(parsed.KeyPoints) == 0 {
		return nil, errors.New("analysis response contained no topics or key points")
	}

	analysis := &types.ContentAnalysis{
		Topics:    parsed.Topics,
		KeyPoints: parsed.KeyPoints,
		Summary:   parsed.Summary,
	}
	for _, item := range parsed.Outline {
		analysis.Outline = append(analysis.Outline, types.OutlineItem{
			Heading: item.Heading,
			Hint:    item.Hint,
		})
	}
	return analysis, nil
}
