package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vidscribe/types"
)

func TestFetchMetadataSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/metadata" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req["url"] != "https://youtu.be/dQw4w9WgXcQ" {
			t.Errorf("url = %q", req["url"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"metadata": types.VideoMetadata{VideoID: "dQw4w9WgXcQ", Title: "Test"},
		})
	}))
	defer server.Close()

	result := NewStageClient(server.URL).FetchMetadata(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if result.Metadata == nil || result.Metadata.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("metadata = %+v", result.Metadata)
	}
}

func TestFetchMetadataServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "YouTube URL is required"})
	}))
	defer server.Close()

	result := NewStageClient(server.URL).FetchMetadata(context.Background(), "")
	if result.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Error, "400") || !strings.Contains(result.Error, "YouTube URL is required") {
		t.Fatalf("error = %q", result.Error)
	}
}

func TestFetchTranscriptQueryEncoding(t *testing.T) {
	videoURL := "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10s"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/transcript" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("url"); got != videoURL {
			t.Errorf("url query = %q; want %q", got, videoURL)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": types.Transcript{
				VideoID:  "dQw4w9WgXcQ",
				Segments: []types.TranscriptSegment{{Text: "hi", Duration: 1}},
			},
		})
	}))
	defer server.Close()

	result := NewStageClient(server.URL).FetchTranscript(context.Background(), videoURL)
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if result.Transcript == nil || len(result.Transcript.Segments) != 1 {
		t.Fatalf("transcript = %+v", result.Transcript)
	}
}

func TestTransportErrorCollapsesIntoErrorString(t *testing.T) {
	// Point at a closed server so the request fails at the transport level.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	result := NewStageClient(server.URL).AnalyzeContent(context.Background(), &types.Transcript{})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error == "" {
		t.Fatal("transport failure must surface as an error string")
	}
}

func TestGenerateArticleSendsFullPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Analysis == nil || req.VideoMetadata == nil || req.Transcript == nil {
			t.Errorf("incomplete payload: %+v", req)
		}
		if req.Options.Length != "short" {
			t.Errorf("options.length = %q", req.Options.Length)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"article": types.Article{Title: "Done"},
		})
	}))
	defer server.Close()

	result := NewStageClient(server.URL).GenerateArticle(context.Background(), GenerateRequest{
		Analysis:      &types.ContentAnalysis{Summary: "s"},
		VideoMetadata: &types.VideoMetadata{VideoID: "x"},
		Transcript:    &types.Transcript{Segments: []types.TranscriptSegment{{Text: "t"}}},
		Options:       types.GenerationOptions{Length: "short"},
	})
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if result.Article == nil || result.Article.Title != "Done" {
		t.Fatalf("article = %+v", result.Article)
	}
}

func TestAPIErrorMessageFallback(t *testing.T) {
	if got := apiErrorMessage([]byte(`{"error":"bad input"}`)); got != "bad input" {
		t.Fatalf("got %q", got)
	}
	if got := apiErrorMessage([]byte("plain text")); got != "plain text" {
		t.Fatalf("got %q", got)
	}
}
