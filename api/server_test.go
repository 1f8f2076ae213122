package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(s)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := doRequest(t, &Server{}, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"status":"healthy"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	w := doRequest(t, &Server{}, http.MethodOptions, "/api/process", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d; want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin = %q", got)
	}
}

func TestMetadataRequiresURL(t *testing.T) {
	w := doRequest(t, &Server{}, http.MethodPost, "/api/metadata", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"YouTube URL is required"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestMetadataRejectsNonYouTubeURL(t *testing.T) {
	w := doRequest(t, &Server{}, http.MethodPost, "/api/metadata", `{"url":"https://example.com/video"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

func TestTranscriptRequiresURL(t *testing.T) {
	w := doRequest(t, &Server{}, http.MethodGet, "/api/transcript", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

func TestAnalyzeRejectsEmptyTranscript(t *testing.T) {
	w := doRequest(t, &Server{}, http.MethodPost, "/api/analyze", `{"transcript":{"video_id":"x","segments":[]}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

func TestAnalyzeWithoutModelConfigured(t *testing.T) {
	body := `{"transcript":{"video_id":"x","segments":[{"start":0,"duration":1,"text":"hi"}]}}`
	w := doRequest(t, &Server{}, http.MethodPost, "/api/analyze", body)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d; want 503", w.Code)
	}
}

func TestGenerateRequiresAllInputs(t *testing.T) {
	w := doRequest(t, &Server{}, http.MethodPost, "/api/generate", `{"analysis":{"summary":"s"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

func TestGenerateWithoutModelConfigured(t *testing.T) {
	body := `{
		"analysis": {"topics":["t"],"key_points":["k"],"summary":"s"},
		"video_metadata": {"video_id":"x","title":"T"},
		"transcript": {"video_id":"x","segments":[{"start":0,"duration":1,"text":"hi"}]}
	}`
	w := doRequest(t, &Server{}, http.MethodPost, "/api/generate", body)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d; want 503", w.Code)
	}
}

func TestVideosRequiresChannelID(t *testing.T) {
	w := doRequest(t, &Server{}, http.MethodGet, "/api/videos", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}
