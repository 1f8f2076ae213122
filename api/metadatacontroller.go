package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vidscribe/cache"
	"vidscribe/config"
	"vidscribe/metadata"
	"vidscribe/types"
)

// MetadataRequest represents the request to fetch video metadata
type MetadataRequest struct {
	URL string `json:"url"`
}

// handleMetadata resolves a YouTube URL into video metadata.
// POST /api/metadata
func (s *Server) handleMetadata(c *gin.Context) {
	var req MetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "YouTube URL is required"})
		return
	}

	videoID, err := metadata.ParseVideoID(req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	if s.Cache != nil {
		var cached types.VideoMetadata
		hit, err := s.Cache.GetJSON(ctx, cache.MetadataKey(videoID), &cached)
		if err != nil {
			log.Printf("metadata cache lookup failed: %v", err)
		}
		if hit {
			c.JSON(http.StatusOK, gin.H{"metadata": &cached})
			return
		}
	}

	meta, err := s.Metadata.Fetch(ctx, req.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch metadata: " + err.Error()})
		return
	}

	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, cache.MetadataKey(videoID), meta, config.CacheTTL); err != nil {
			log.Printf("metadata cache store failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"metadata": meta})
}
