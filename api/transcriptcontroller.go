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

// handleTranscript retrieves timed caption segments for a video.
// GET /api/transcript?url=<video url>&lang=<optional language code>
func (s *Server) handleTranscript(c *gin.Context) {
	rawURL := strings.TrimSpace(c.Query("url"))
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "YouTube URL is required"})
		return
	}

	videoID, err := metadata.ParseVideoID(rawURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	language := c.Query("lang")
	ctx := c.Request.Context()

	// Cached transcripts are stored per video, not per language; only the
	// default lookup hits the cache.
	if s.Cache != nil && language == "" {
		var cached types.Transcript
		hit, err := s.Cache.GetJSON(ctx, cache.TranscriptKey(videoID), &cached)
		if err != nil {
			log.Printf("transcript cache lookup failed: %v", err)
		}
		if hit {
			c.JSON(http.StatusOK, gin.H{"data": &cached})
			return
		}
	}

	tr, err := s.Transcript.Fetch(ctx, rawURL, language)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch transcript: " + err.Error()})
		return
	}

	if s.Cache != nil && language == "" {
		if err := s.Cache.SetJSON(ctx, cache.TranscriptKey(videoID), tr, config.CacheTTL); err != nil {
			log.Printf("transcript cache store failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": tr})
}
