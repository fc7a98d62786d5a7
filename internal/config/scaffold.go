package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

site:
  base_url: "https://example.test"
  login_path: "/login"
  quiz_index_path: "/quizzes"
  # Site key used when captcha discovery on the claim page fails.
  fallback_site_key: ""

browser:
  headless: true
  nav_timeout_seconds: 30
  step_timeout_seconds: 10
  click_retries: 3

solver:
  provider: anticaptcha
  poll_interval_seconds: 5
  poll_attempts: 24

llm:
  provider: openrouter
  model: "gpt-4.1-mini"

quizzes:
  file: "quizzes.json"
  max_questions: 20
  max_attempts: 50
  max_consecutive_failures: 5
  similarity_threshold: 0.6

output:
  dir: ".quizbot/runs"
  history_db: ".quizbot/history.duckdb"
`

const emptyQuizFile = `{
  "quizzes": []
}
`

// Scaffold writes a starter config and an empty quiz file next to it.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	baseDir := filepath.Dir(configPath)
	quizPath := filepath.Join(baseDir, DefaultQuizFile)
	if info, err := os.Stat(quizPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("quiz file path %q is a directory", quizPath)
		}
		return fmt.Errorf("quiz file already exists at %q", quizPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat quiz file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(quizPath, []byte(emptyQuizFile), 0o644); err != nil {
		return fmt.Errorf("write quiz file: %w", err)
	}
	return nil
}
