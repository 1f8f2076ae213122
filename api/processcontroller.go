package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"vidscribe/types"
)

// uploadTimeout bounds the post-success S3 archival call.
const uploadTimeout = 30 * time.Second

// ProcessRequest represents the incoming streaming request
type ProcessRequest struct {
	URL     string                  `json:"url"`
	Options types.GenerationOptions `json:"options"`
}

// eventChannelSize holds every event one run can emit (8 progress markers
// plus one terminal event), so the pipeline never blocks on a slow or
// disconnected consumer.
const eventChannelSize = 16

// handleProcess runs the full pipeline for one video and streams progress
// as Server-Sent Events. Exactly one result or error event terminates the
// stream.
// POST /api/process
func (s *Server) handleProcess(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "YouTube URL is required"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Writer.WriteHeader(http.StatusOK)

	events := make(chan types.StreamEvent, eventChannelSize)

	// The run is detached from the request context: a client disconnect
	// does not stop in-flight stage calls, they simply lose their observer.
	go func() {
		defer close(events)

		result := s.Pipeline.Process(context.Background(), req.URL, req.Options, func(status types.ProcessingStatus) {
			select {
			case events <- types.StreamEvent{Type: types.EventProgress, Status: &status}:
			default:
			}
		})

		if result.Success {
			events <- types.StreamEvent{Type: types.EventResult, Result: result}
			s.archiveResult(result)
		} else {
			// Error events still carry the result so consumers see the
			// artifacts produced before the failing stage.
			events <- types.StreamEvent{Type: types.EventError, Error: result.Error, Result: result}
		}
	}()

	for event := range events {
		writeSSE(c, event)
	}
}

// writeSSE emits one data-only SSE frame.
func writeSSE(c *gin.Context, event types.StreamEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal stream event: %v", err)
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", data)
	c.Writer.Flush()
}

// archiveResult runs the optional post-success side effects: S3 archival
// and the Kafka article event.
func (s *Server) archiveResult(result *types.PipelineResult) {
	if s.Uploader != nil {
		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		if err := s.Uploader.UploadResult(ctx, result); err != nil {
			log.Printf("S3 upload failed for run %s: %v", result.RunID, err)
		}
		cancel()
	}

	if s.Publisher != nil {
		if err := s.Publisher.PublishResult(result); err != nil {
			log.Printf("Kafka publish failed for run %s: %v", result.RunID, err)
		}
	}
}
