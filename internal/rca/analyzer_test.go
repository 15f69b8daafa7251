package rca

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

var testIncident = model.Incident{
	ID:               "inc-002",
	Title:            "Vertex AI Latency Spike >3s",
	Severity:         model.SeverityHigh,
	Status:           model.StatusInvestigating,
	Timestamp:        "2023-10-27 12:05:01",
	AffectedArtist:   "System-wide",
	MissedDetections: 0,
}

type capturedRequest struct {
	mu   sync.Mutex
	path string
	auth string
	body map[string]any
}

// newFakeEndpoint serves an OpenAI-compatible chat completions route that
// answers with the given status and assistant content.
func newFakeEndpoint(t *testing.T, status int, content string, choices bool) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		captured.mu.Lock()
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		_ = json.Unmarshal(raw, &captured.body)
		captured.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = io.WriteString(w, `{"error":{"message":"quota exceeded","type":"rate_limit"}}`)
			return
		}
		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gemini-3-flash-preview",
			"choices": []any{},
		}
		if choices {
			resp["choices"] = []any{map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newTestClient(t *testing.T, baseURL, key string) *Client {
	t.Helper()
	return NewClient(Config{
		APIKey:  key,
		BaseURL: baseURL,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestAnalyzeSuccess(t *testing.T) {
	t.Parallel()
	srv, captured := newFakeEndpoint(t, http.StatusOK,
		`{"rootCause":"Quota exhaustion on the embedding endpoint.","remediation":"Raise the Vertex AI quota."}`, true)

	got := newTestClient(t, srv.URL+"/v1beta/openai/", "test-key").Analyze(context.Background(), testIncident)

	want := Analysis{RootCause: "Quota exhaustion on the embedding endpoint.", Remediation: "Raise the Vertex AI quota."}
	if got != want {
		t.Fatalf("Analyze() = %+v, want %+v", got, want)
	}

	captured.mu.Lock()
	defer captured.mu.Unlock()
	if captured.path != "/v1beta/openai/chat/completions" {
		t.Errorf("path = %q", captured.path)
	}
	if captured.auth != "Bearer test-key" {
		t.Errorf("Authorization = %q", captured.auth)
	}
	if captured.body["model"] != model.DefaultAnalysisModel {
		t.Errorf("model = %v, want %s", captured.body["model"], model.DefaultAnalysisModel)
	}
	rf, _ := captured.body["response_format"].(map[string]any)
	if rf["type"] != "json_object" {
		t.Errorf("response_format = %v, want json_object", captured.body["response_format"])
	}
	msgs, _ := captured.body["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("messages = %v", captured.body["messages"])
	}
	msg, _ := msgs[0].(map[string]any)
	if msg["role"] != "user" {
		t.Errorf("role = %v, want user", msg["role"])
	}
	incidentJSON, err := json.Marshal(testIncident)
	if err != nil {
		t.Fatalf("marshal incident: %v", err)
	}
	wantPrompt := "As an AI Observability Specialist, analyze this incident data and provide a concise Root Cause Analysis and specific remediation steps. \n" +
		"      Incident Data: " + string(incidentJSON) + "\n" +
		"      Format: Return as JSON with \"rootCause\" and \"remediation\" fields."
	if content, _ := msg["content"].(string); content != wantPrompt {
		t.Errorf("prompt =\n%q\nwant\n%q", content, wantPrompt)
	}
}

func TestAnalyzeFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		content string
		choices bool
		key     string
	}{
		{"missing key", http.StatusOK, `{"rootCause":"a","remediation":"b"}`, true, ""},
		{"server error", http.StatusInternalServerError, "", true, "k"},
		{"rate limited", http.StatusTooManyRequests, "", true, "k"},
		{"no choices", http.StatusOK, "", false, "k"},
		{"non-json content", http.StatusOK, "the root cause is quota", true, "k"},
		{"fenced json", http.StatusOK, "```json\n{\"rootCause\":\"x\",\"remediation\":\"y\"}\n```", true, "k"},
		{"missing remediation", http.StatusOK, `{"rootCause":"a"}`, true, "k"},
		{"empty root cause", http.StatusOK, `{"rootCause":"  ","remediation":"b"}`, true, "k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv, _ := newFakeEndpoint(t, tt.status, tt.content, tt.choices)
			got := newTestClient(t, srv.URL, tt.key).Analyze(context.Background(), testIncident)
			if got != Fallback {
				t.Errorf("Analyze() = %+v, want Fallback", got)
			}
		})
	}
}

func TestAnalyzeTransportError(t *testing.T) {
	t.Parallel()
	srv, _ := newFakeEndpoint(t, http.StatusOK, "", true)
	url := srv.URL
	srv.Close()

	if got := newTestClient(t, url, "k").Analyze(context.Background(), testIncident); got != Fallback {
		t.Errorf("Analyze() = %+v, want Fallback", got)
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	t.Parallel()
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Analysis, 1)
	go func() { done <- newTestClient(t, srv.URL, "k").Analyze(ctx, testIncident) }()
	cancel()

	select {
	case got := <-done:
		if got != Fallback {
			t.Errorf("Analyze() = %+v, want Fallback", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Analyze did not return after cancellation")
	}
}

func TestAnalyzeTimeout(t *testing.T) {
	t.Parallel()
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	c := NewClient(Config{
		APIKey:  "k",
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if got := c.Analyze(context.Background(), testIncident); got != Fallback {
		t.Errorf("Analyze() = %+v, want Fallback", got)
	}
}

func TestParseAnalysis(t *testing.T) {
	t.Parallel()

	got, err := parseAnalysis("  {\"rootCause\":\"x\",\"remediation\":\"y\"}\n")
	if err != nil {
		t.Fatalf("parseAnalysis(bare): %v", err)
	}
	if got.RootCause != "x" || got.Remediation != "y" {
		t.Errorf("parseAnalysis(bare) = %+v", got)
	}

	_, err = parseAnalysis("```json\n{\"rootCause\":\"x\",\"remediation\":\"y\"}\n```")
	var rcaErr *Error
	if !errors.As(err, &rcaErr) || rcaErr.Op != "decode" {
		t.Errorf("fenced reply err = %v, want decode *Error", err)
	}

	_, err = parseAnalysis(`{"remediation":"y"}`)
	if !errors.As(err, &rcaErr) || rcaErr.Op != "decode" {
		t.Errorf("err = %v, want decode *Error", err)
	}
	if !errors.Is(err, ErrIncompleteAnalysis) {
		t.Errorf("err = %v, want ErrIncompleteAnalysis", err)
	}
}

func TestMissingKeyDoesNotCallNetwork(t *testing.T) {
	t.Parallel()
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, "  ")
	if got := c.Analyze(context.Background(), testIncident); got != Fallback {
		t.Errorf("Analyze() = %+v, want Fallback", got)
	}
	if called {
		t.Error("request sent without an API key")
	}

	_, err := c.analyze(context.Background(), testIncident)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}
