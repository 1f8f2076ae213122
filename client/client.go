package client

import (
	"net/http"
	"os"

	"vidscribe/config"
)

// StageClient calls the stage API routes. The routes are siblings of the
// process endpoint, so by default the client targets the local server.
type StageClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewStageClient creates a new stage client
func NewStageClient(baseURL string) *StageClient {
	if baseURL == "" {
		baseURL = getEnvOrDefault("STAGE_API_URL", "http://localhost:8080")
	}
	return &StageClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.StageRequestTimeout},
	}
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
