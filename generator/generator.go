package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vidscribe/config"
	"vidscribe/llm"
	"vidscribe/types"
)

const generatorPreamble = "You write polished blog articles from video transcripts. " +
	"Always respond with a single JSON object and nothing else."

// Generator drafts a blog article from analysis, metadata, and transcript
// by prompting a chat model.
type Generator struct {
	chat llm.ChatClient
}

// NewGenerator creates a generator over the given chat client.
func NewGenerator(chat llm.ChatClient) *Generator {
	return &Generator{chat: chat}
}

// Input bundles everything the generation stage needs.
type Input struct {
	Analysis      *types.ContentAnalysis
	VideoMetadata *types.VideoMetadata
	Transcript    *types.Transcript
	Options       types.GenerationOptions
}

// llmArticle is the JSON structure expected from the model.
type llmArticle struct {
	Title    string `json:"title"`
	Intro    string `json:"intro"`
	Sections []struct {
		Heading string `json:"heading"`
		Content string `json:"content"`
	} `json:"sections"`
	Tags []string `json:"tags"`
}

// Generate drafts the article.
func (g *Generator) Generate(ctx context.Context, in Input) (*types.Article, error) {
	if in.Analysis == nil || in.VideoMetadata == nil || in.Transcript == nil {
		return nil, errors.New("analysis, metadata, and transcript are all required")
	}

	prompt := buildGenerationPrompt(in)
	raw, err := g.chat.Chat(ctx, generatorPreamble, prompt)
	if err != nil {
		return nil, fmt.Errorf("generation chat failed: %w", err)
	}

	article, err := parseArticleResponse(raw)
	if err != nil {
		return nil, err
	}

	article.Model = g.chat.ModelName()
	article.GeneratedAt = time.Now()
	return article, nil
}

// targetWords resolves the length option to a word-count target.
func targetWords(length string) int {
	if length == "" {
		length = config.DefaultArticleLength
	}
	if target, ok := config.LengthTargets[length]; ok {
		return target
	}
	return config.LengthTargets[config.DefaultArticleLength]
}

func buildGenerationPrompt(in Input) string {
	text := in.Transcript.FullText()
	if len(text) > config.MaxTranscriptPromptChars {
		text = text[:config.MaxTranscriptPromptChars]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write a blog article of roughly %d words based on a video.\n\n", targetWords(in.Options.Length))
	fmt.Fprintf(&b, "Video title: %s\n", in.VideoMetadata.Title)
	if in.VideoMetadata.ChannelTitle != "" {
		fmt.Fprintf(&b, "Channel: %s\n", in.VideoMetadata.ChannelTitle)
	}
	if in.Options.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", in.Options.Tone)
	}
	if len(in.Options.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords to include: %s\n", strings.Join(in.Options.Keywords, ", "))
	}

	b.WriteString("\nAnalysis summary: ")
	b.WriteString(in.Analysis.Summary)
	b.WriteString("\nTopics: ")
	b.WriteString(strings.Join(in.Analysis.Topics, ", "))
	b.WriteString("\nKey points:\n")
	for _, p := range in.Analysis.KeyPoints {
		b.WriteString("- " + p + "\n")
	}
	if len(in.Analysis.Outline) > 0 {
		b.WriteString("Suggested outline:\n")
		for _, o := range in.Analysis.Outline {
			fmt.Fprintf(&b, "- %s (%s)\n", o.Heading, o.Hint)
		}
	}

	b.WriteString("\nReturn JSON with these fields:\n")
	b.WriteString(`  "title": the article title` + "\n")
	b.WriteString(`  "intro": an opening paragraph` + "\n")
	b.WriteString(`  "sections": ordered objects with "heading" and "content"` + "\n")
	b.WriteString(`  "tags": 3-6 short tags` + "\n\n")
	b.WriteString("Transcript:\n")
	b.WriteString(text)
	return b.String()
}

func parseArticleResponse(raw string) (*types.Article, error) {
	var parsed llmArticle
	if err := json.Unmarshal([]byte(llm.StripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse article response: %w", err)
	}
	if parsed.Title == "" || len(parsed.Sections) == 0 {
		return nil, errors.New("article response missing title or sections")
	}

	article := &types.Article{
		Title: parsed.Title,
		Intro: parsed.Intro,
		Tags:  parsed.Tags,
	}
	for _, s := range parsed.Sections {
		article.Sections = append(article.Sections, types.ArticleSection{
			Heading: s.Heading,
			Content: s.Content,
		})
	}
	return article, nil
}
