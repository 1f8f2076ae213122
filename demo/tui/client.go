package tui

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"vidscribe/types"
)

// ProcessClient is a thin HTTP client for the article pipeline API.
type ProcessClient struct {
	baseURL string
	client  *http.Client
}

// NewProcessClient creates a new process client. The client has no timeout
// because the process stream stays open for the whole pipeline run.
func NewProcessClient(baseURL string) *ProcessClient {
	return &ProcessClient{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// Stream opens the process endpoint and returns a channel of decoded
// events. The channel closes when the server ends the stream.
func (c *ProcessClient) Stream(videoURL string, options types.GenerationOptions) (<-chan types.StreamEvent, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"url":     videoURL,
		"options": options,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/api/process", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to start processing: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	events := make(chan types.StreamEvent)
	go func() {
		defer close(events)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}

			var event types.StreamEvent
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event); err != nil {
				continue
			}
			events <- event
		}
	}()

	return events, nil
}
