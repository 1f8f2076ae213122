package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidscribe/generator"
	"vidscribe/types"
)

// GenerateRequest represents the request to draft an article
type GenerateRequest struct {
	Analysis      *types.ContentAnalysis  `json:"analysis" binding:"required"`
	VideoMetadata *types.VideoMetadata    `json:"video_metadata" binding:"required"`
	Transcript    *types.Transcript       `json:"transcript" binding:"required"`
	Options       types.GenerationOptions `json:"options"`
}

// handleGenerate drafts a blog article from analysis, metadata, and transcript.
// POST /api/generate
func (s *Server) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if s.Generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "language model is not configured"})
		return
	}

	article, err := s.Generator.Generate(c.Request.Context(), generator.Input{
		Analysis:      req.Analysis,
		VideoMetadata: req.VideoMetadata,
		Transcript:    req.Transcript,
		Options:       req.Options,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate article: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}
