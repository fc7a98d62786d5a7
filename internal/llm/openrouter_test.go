package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestSuggestAnswer verifies request shape and reply extraction.
func TestSuggestAnswer(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody openRouterRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  Blue  "}}]}`))
	}))
	defer server.Close()

	provider, err := NewOpenRouterProvider("test-model", "secret", server.URL, server.Client())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	reply, err := provider.SuggestAnswer(context.Background(), "What color is the sky?", []string{"Red", "Blue"})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if reply != "Blue" {
		t.Fatalf("expected trimmed reply Blue, got %q", reply)
	}
	if gotPath != "/chat/completions" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody.Model != "test-model" {
		t.Fatalf("unexpected model %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages %+v", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[1].Content, "- Blue") {
		t.Fatalf("expected options in prompt, got %q", gotBody.Messages[1].Content)
	}
}

// TestSuggestAnswerErrorBody verifies non-2xx bodies surface in the error.
func TestSuggestAnswerErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider, err := NewOpenRouterProvider("test-model", "secret", server.URL, server.Client())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	_, err = provider.SuggestAnswer(context.Background(), "q", []string{"a"})
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected error with body, got %v", err)
	}
}

// TestSuggestAnswerEmptyChoices verifies empty responses are rejected.
func TestSuggestAnswerEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	provider, err := NewOpenRouterProvider("test-model", "secret", server.URL, server.Client())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if _, err := provider.SuggestAnswer(context.Background(), "q", []string{"a"}); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

// TestNewOpenRouterProviderValidation verifies required settings.
func TestNewOpenRouterProviderValidation(t *testing.T) {
	if _, err := NewOpenRouterProvider("", "key", "", nil); err == nil {
		t.Fatalf("expected error for missing model")
	}
	if _, err := NewOpenRouterProvider("model", "", "", nil); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	provider, err := NewOpenRouterProvider("model", "key", "", nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if provider.BaseURL != defaultOpenRouterBaseURL {
		t.Fatalf("expected default base url, got %q", provider.BaseURL)
	}
}
