package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidscribe/types"
)

// AnalyzeRequest represents the request to analyze a transcript
type AnalyzeRequest struct {
	Transcript *types.Transcript `json:"transcript" binding:"required"`
}

// handleAnalyze derives topics and key points from a transcript.
// POST /api/analyze
func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Transcript.Segments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transcript has no segments"})
		return
	}

	if s.Analyzer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "language model is not configured"})
		return
	}

	result, err := s.Analyzer.Analyze(c.Request.Context(), req.Transcript)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze transcript: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": result})
}
