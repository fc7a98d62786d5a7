package config

import (
	"os"

	"quizbot/internal/spec"
)

// Defaults applied by Normalize.
const (
	DefaultNavTimeoutSeconds      = 30
	DefaultStepTimeoutSeconds     = 10
	DefaultClickRetries           = 3
	DefaultPollIntervalSeconds    = 5
	DefaultPollAttempts           = 24
	DefaultMaxQuestions           = 20
	DefaultMaxAttempts            = 50
	DefaultMaxConsecutiveFailures = 5
	DefaultSimilarityThreshold    = 0.6
	DefaultQuizFile               = "quizzes.json"
	DefaultOutputDir              = ".quizbot/runs"
	DefaultHistoryDB              = ".quizbot/history.duckdb"
	DefaultLoginPath              = "/login"
)

// Normalize fills defaults for optional config fields.
func Normalize(cfg *spec.Config) {
	if cfg.Site.LoginPath == "" {
		cfg.Site.LoginPath = DefaultLoginPath
	}
	if cfg.Browser.NavTimeoutSeconds <= 0 {
		cfg.Browser.NavTimeoutSeconds = DefaultNavTimeoutSeconds
	}
	if cfg.Browser.StepTimeoutSeconds <= 0 {
		cfg.Browser.StepTimeoutSeconds = DefaultStepTimeoutSeconds
	}
	if cfg.Browser.ClickRetries <= 0 {
		cfg.Browser.ClickRetries = DefaultClickRetries
	}
	if cfg.Solver.Provider == "" {
		cfg.Solver.Provider = "anticaptcha"
	}
	if cfg.Solver.PollIntervalSeconds <= 0 {
		cfg.Solver.PollIntervalSeconds = DefaultPollIntervalSeconds
	}
	if cfg.Solver.PollAttempts <= 0 {
		cfg.Solver.PollAttempts = DefaultPollAttempts
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openrouter"
	}
	if cfg.Quizzes.File == "" {
		cfg.Quizzes.File = DefaultQuizFile
	}
	if cfg.Quizzes.MaxQuestions <= 0 {
		cfg.Quizzes.MaxQuestions = DefaultMaxQuestions
	}
	if cfg.Quizzes.MaxAttempts <= 0 {
		cfg.Quizzes.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Quizzes.MaxConsecutiveFailures <= 0 {
		cfg.Quizzes.MaxConsecutiveFailures = DefaultMaxConsecutiveFailures
	}
	if cfg.Quizzes.SimilarityThreshold <= 0 {
		cfg.Quizzes.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if cfg.Output.HistoryDB == "" {
		cfg.Output.HistoryDB = DefaultHistoryDB
	}
	// CI schedulers get a headless browser regardless of the config file.
	if os.Getenv("QUIZBOT_CI") == "1" {
		cfg.Browser.Headless = true
	}
}
