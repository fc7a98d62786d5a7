package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizbot/internal/spec"
)

func validConfig() spec.Config {
	cfg := spec.Config{
		Version: 1,
		Site: spec.SiteConfig{
			BaseURL: "https://example.test",
		},
		LLM: spec.LLMConfig{Model: "test-model"},
	}
	Normalize(&cfg)
	return cfg
}

// TestNormalizeDefaults verifies defaults are applied to an empty config.
func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if cfg.Quizzes.MaxQuestions != DefaultMaxQuestions {
		t.Fatalf("expected max questions %d, got %d", DefaultMaxQuestions, cfg.Quizzes.MaxQuestions)
	}
	if cfg.Quizzes.MaxAttempts != DefaultMaxAttempts {
		t.Fatalf("expected max attempts %d, got %d", DefaultMaxAttempts, cfg.Quizzes.MaxAttempts)
	}
	if cfg.Quizzes.SimilarityThreshold != DefaultSimilarityThreshold {
		t.Fatalf("unexpected threshold %v", cfg.Quizzes.SimilarityThreshold)
	}
	if cfg.Site.LoginPath != DefaultLoginPath {
		t.Fatalf("unexpected login path %q", cfg.Site.LoginPath)
	}
	if cfg.Solver.Provider != "anticaptcha" {
		t.Fatalf("unexpected solver provider %q", cfg.Solver.Provider)
	}
}

// TestNormalizeCIForcesHeadless verifies QUIZBOT_CI overrides the browser mode.
func TestNormalizeCIForcesHeadless(t *testing.T) {
	t.Setenv("QUIZBOT_CI", "1")
	cfg := spec.Config{Version: 1}
	cfg.Browser.Headless = false
	Normalize(&cfg)
	if !cfg.Browser.Headless {
		t.Fatalf("expected CI mode to force headless")
	}
}

// TestValidateCollectsIssues verifies all problems are reported at once.
func TestValidateCollectsIssues(t *testing.T) {
	cfg := spec.Config{
		Version: 2,
		Site:    spec.SiteConfig{BaseURL: "not-a-url", LoginPath: "login"},
		Solver:  spec.SolverConfig{Provider: "bogus"},
		LLM:     spec.LLMConfig{Provider: "openrouter"},
		Quizzes: spec.QuizzesConfig{MaxQuestions: 1, MaxAttempts: 1, SimilarityThreshold: 0.5},
	}
	err := Validate(&cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := map[string]bool{}
	for _, issue := range verr.Issues {
		fields[issue.Field] = true
	}
	for _, want := range []string{"version", "site.base_url", "site.login_path", "solver.provider", "llm.model"} {
		if !fields[want] {
			t.Fatalf("expected issue for %s, got %v", want, verr.Issues)
		}
	}
}

// TestValidateAcceptsNormalizedConfig verifies the happy path.
func TestValidateAcceptsNormalizedConfig(t *testing.T) {
	cfg := validConfig()
	if err := Validate(&cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

// TestLoadRoundTrip verifies Load parses a file written by Scaffold.
func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Site.BaseURL == "" {
		t.Fatalf("expected scaffolded base url")
	}
	if _, err := os.Stat(filepath.Join(dir, DefaultQuizFile)); err != nil {
		t.Fatalf("expected scaffolded quiz file: %v", err)
	}
}

// TestScaffoldRefusesOverwrite verifies existing files are preserved.
func TestScaffoldRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	err := Scaffold(path)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already-exists error, got %v", err)
	}
}

// TestSecretsFromEnv verifies required variables are enforced.
func TestSecretsFromEnv(t *testing.T) {
	t.Setenv(EnvSiteUsername, "user")
	t.Setenv(EnvSitePassword, "pass")
	t.Setenv(EnvCaptchaAPIKey, "captcha-key")
	t.Setenv(EnvLLMAPIKey, "")

	secrets, err := SecretsFromEnv()
	if err != nil {
		t.Fatalf("secrets: %v", err)
	}
	if secrets.SiteUsername != "user" || secrets.CaptchaAPIKey != "captcha-key" {
		t.Fatalf("unexpected secrets %+v", secrets)
	}
	if secrets.LLMAPIKey != "" {
		t.Fatalf("expected empty llm key")
	}

	t.Setenv(EnvCaptchaAPIKey, "")
	if _, err := SecretsFromEnv(); err == nil {
		t.Fatalf("expected error for missing captcha key")
	}
}

// TestResolvePath verifies config-relative resolution.
func TestResolvePath(t *testing.T) {
	if got := ResolvePath("/base", "quizzes.json"); got != filepath.Join("/base", "quizzes.json") {
		t.Fatalf("unexpected resolved path %q", got)
	}
	if got := ResolvePath("/base", "/abs/quizzes.json"); got != "/abs/quizzes.json" {
		t.Fatalf("absolute path should pass through, got %q", got)
	}
}
