package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"vidscribe/feeds"
)

// handleListVideos lists a channel's recent uploads from its public feed.
// GET /api/videos?channel_id=<channel id>&count=<optional limit>
func (s *Server) handleListVideos(c *gin.Context) {
	channelID := strings.TrimSpace(c.Query("channel_id"))
	if channelID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel_id is required"})
		return
	}

	count := 0
	if v := c.Query("count"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
			return
		}
		count = parsed
	}

	entries, err := feeds.FetchChannelUploads(c.Request.Context(), channelID, count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch channel uploads: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channel_id": channelID,
		"count":      len(entries),
		"videos":     entries,
	})
}
