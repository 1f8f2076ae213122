package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ArticleSection is one heading/content block of a generated article.
type ArticleSection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// Article is the terminal artifact of one pipeline run.
type Article struct {
	Title       string           `json:"title"`
	Intro       string           `json:"intro,omitempty"`
	Sections    []ArticleSection `json:"sections"`
	Tags        []string         `json:"tags,omitempty"`
	Model       string           `json:"model,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// GenerateID creates a stable short identifier from a URL.
func GenerateID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
