package spec

import (
	"strings"
	"testing"
)

// TestParseConfig verifies a full config document round-trips into the schema.
func TestParseConfig(t *testing.T) {
	data := []byte(`version: 1
site:
  base_url: https://example.test
  login_path: /login
  quiz_index_path: /quizzes
browser:
  headless: true
  nav_timeout_seconds: 30
solver:
  provider: anticaptcha
llm:
  provider: openrouter
  model: test-model
quizzes:
  file: quizzes.json
  max_questions: 20
  similarity_threshold: 0.6
output:
  dir: runs
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Version != 1 {
		t.Fatalf("expected version 1, got %d", cfg.Version)
	}
	if cfg.Site.BaseURL != "https://example.test" {
		t.Fatalf("unexpected base url %q", cfg.Site.BaseURL)
	}
	if !cfg.Browser.Headless {
		t.Fatalf("expected headless browser")
	}
	if cfg.Quizzes.SimilarityThreshold != 0.6 {
		t.Fatalf("unexpected threshold %v", cfg.Quizzes.SimilarityThreshold)
	}
}

// TestParseConfigRejectsUnknownFields verifies strict decoding.
func TestParseConfigRejectsUnknownFields(t *testing.T) {
	_, err := ParseConfig([]byte("version: 1\nbogus: true\n"))
	if err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestParseConfigRejectsMultipleDocuments verifies one document only.
func TestParseConfigRejectsMultipleDocuments(t *testing.T) {
	_, err := ParseConfig([]byte("version: 1\n---\nversion: 2\n"))
	if err == nil {
		t.Fatalf("expected error for multiple documents")
	}
}
