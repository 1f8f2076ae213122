package llm

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"vidscribe/config"
)

// ChatClient abstracts a prompt->completion call so the analysis and
// generation services can be tested without the network.
type ChatClient interface {
	Chat(ctx context.Context, preamble, message string) (string, error)
	ModelName() string
}

// CohereChat implements ChatClient using the Cohere Chat API.
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereChat struct {
	client *cohereclient.Client
	model  string
}

// NewCohereChat builds a chat client from COHERE_API_KEY. The model defaults
// to config.DefaultChatModel when empty.
func NewCohereChat(model string) (*CohereChat, error) {
	apiKey := os.Getenv("COHERE_API_KEY")
	if apiKey == "" {
		return nil, errors.New("COHERE_API_KEY is not set")
	}
	if model == "" {
		model = config.DefaultChatModel
	}

	// Force HTTP/1.1 to avoid HTTP/2 protocol errors against the Cohere API
	httpClient := &http.Client{
		Timeout: 120 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)

	return &CohereChat{client: client, model: model}, nil
}

func (c *CohereChat) ModelName() string { return c.model }

// Chat sends one message with an optional preamble and returns the raw
// completion text.
func (c *CohereChat) Chat(ctx context.Context, preamble, message string) (string, error) {
	req := &cohere.ChatRequest{
		Message: message,
		Model:   cohere.String(c.model),
	}
	if preamble != "" {
		req.Preamble = cohere.String(preamble)
	}

	resp, err := c.client.Chat(ctx, req)
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Text == "" {
		return "", errors.New("cohere chat returned empty response")
	}
	return resp.Text, nil
}

// StripFences removes markdown code fences that chat models wrap around
// JSON output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
