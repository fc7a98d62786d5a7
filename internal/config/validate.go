package config

import (
	"fmt"
	"net/url"
	"strings"

	"quizbot/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config for correctness. All issues are
// collected and reported together.
func Validate(cfg *spec.Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	base := strings.TrimSpace(cfg.Site.BaseURL)
	if base == "" {
		add("site.base_url", "is required")
	} else if parsed, err := url.Parse(base); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		add("site.base_url", fmt.Sprintf("must be an absolute URL, got %q", base))
	}
	if !strings.HasPrefix(cfg.Site.LoginPath, "/") {
		add("site.login_path", "must start with /")
	}
	if cfg.Site.QuizIndexPath != "" && !strings.HasPrefix(cfg.Site.QuizIndexPath, "/") {
		add("site.quiz_index_path", "must start with /")
	}

	switch cfg.Solver.Provider {
	case "anticaptcha":
	default:
		add("solver.provider", fmt.Sprintf("unsupported provider %q", cfg.Solver.Provider))
	}

	switch cfg.LLM.Provider {
	case "openrouter":
		if strings.TrimSpace(cfg.LLM.Model) == "" {
			add("llm.model", "is required")
		}
	default:
		add("llm.provider", fmt.Sprintf("unsupported provider %q", cfg.LLM.Provider))
	}

	if cfg.Quizzes.SimilarityThreshold <= 0 || cfg.Quizzes.SimilarityThreshold > 1 {
		add("quizzes.similarity_threshold", "must be in (0, 1]")
	}
	if cfg.Quizzes.MaxQuestions <= 0 {
		add("quizzes.max_questions", "must be > 0")
	}
	if cfg.Quizzes.MaxAttempts <= 0 {
		add("quizzes.max_attempts", "must be > 0")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
