package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"vidscribe/types"
)

// Uploader archives generated articles to S3 as JSON and Markdown objects.
type Uploader struct {
	s3     *S3
	bucket string
	prefix string
}

// NewUploaderFromEnv returns an uploader if S3_BUCKET is configured.
// Required: S3_BUCKET. Optional: S3_REGION, S3_PROFILE, S3_PREFIX, S3_USE_PATH_STYLE=true
func NewUploaderFromEnv(ctx context.Context) (*Uploader, error) {
	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		return nil, nil
	}

	cfg := S3Config{
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: os.Getenv("S3_USE_PATH_STYLE") == "true",
	}

	s3Client, err := NewS3(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	prefix := strings.Trim(os.Getenv("S3_PREFIX"), "/")
	if prefix == "" {
		prefix = "articles"
	}

	return &Uploader{s3: s3Client, bucket: bucket, prefix: prefix}, nil
}

// UploadResult stores the full pipeline result as JSON plus a rendered
// Markdown version of the article.
func (u *Uploader) UploadResult(ctx context.Context, result *types.PipelineResult) error {
	if result == nil || result.Article == nil {
		return fmt.Errorf("no article to upload")
	}

	base := u.objectKey(result)

	// Re-runs of an already archived result are skipped.
	if exists, err := u.s3.Exists(ctx, u.bucket, base+".json"); err == nil && exists {
		log.Printf("Skipping archive for run %s, object already exists", result.RunID)
		return nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := u.s3.Put(ctx, u.bucket, base+".json", bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("upload json: %w", err)
	}

	md := RenderMarkdown(result.Article, result.VideoMetadata)
	if err := u.s3.Put(ctx, u.bucket, base+".md", strings.NewReader(md), "text/markdown; charset=utf-8"); err != nil {
		return fmt.Errorf("upload markdown: %w", err)
	}

	log.Printf("Archived article to s3://%s/%s.{json,md}", u.bucket, base)
	return nil
}

// objectKey is deterministic per video and day, so a rerun of the same
// video lands on the same objects. The run ID stays inside the JSON payload.
func (u *Uploader) objectKey(result *types.PipelineResult) string {
	videoID := "unknown-" + result.RunID
	if result.VideoMetadata != nil && result.VideoMetadata.VideoID != "" {
		videoID = result.VideoMetadata.VideoID
	}
	return fmt.Sprintf("%s/%s/%s", u.prefix, time.Now().Format("2006/01/02"), videoID)
}

// RenderMarkdown formats an article as a Markdown document with a small
// source-attribution header.
func RenderMarkdown(article *types.Article, meta *types.VideoMetadata) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", article.Title)
	if meta != nil && meta.URL != "" {
		fmt.Fprintf(&b, "> Source video: [%s](%s)", meta.Title, meta.URL)
		if meta.ChannelTitle != "" {
			fmt.Fprintf(&b, " by %s", meta.ChannelTitle)
		}
		b.WriteString("\n\n")
	}
	if article.Intro != "" {
		b.WriteString(article.Intro)
		b.WriteString("\n\n")
	}
	for _, section := range article.Sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", section.Heading, section.Content)
	}
	if len(article.Tags) > 0 {
		fmt.Fprintf(&b, "---\nTags: %s\n", strings.Join(article.Tags, ", "))
	}

	return b.String()
}
