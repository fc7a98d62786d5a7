package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quizbot/internal/browser"
	"quizbot/internal/runner"
	"quizbot/internal/spec"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// setupRunEnv scaffolds a config and the secrets a run needs.
func setupRunEnv(t *testing.T) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), ".quizbot.yml")
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"init", "--config", configPath}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("init failed:\n%s", stderr.String())
	}
	t.Setenv("SITE_USERNAME", "alice")
	t.Setenv("SITE_PASSWORD", "secret")
	t.Setenv("CAPTCHA_API_KEY", "captcha-key")
	return configPath
}

// stubRunAndWrite replaces the run pipeline for the duration of a test.
func stubRunAndWrite(t *testing.T, stub func(ctx context.Context, cfg spec.Config, params runner.RunParams) (runner.Results, runner.OutputPaths, error)) {
	t.Helper()
	original := runAndWrite
	runAndWrite = stub
	t.Cleanup(func() { runAndWrite = original })
}

func successfulResults(outputDir string) (runner.Results, runner.OutputPaths) {
	results := runner.Results{
		RunID:      "20250301T100000Z-abcdef",
		Site:       "https://example.test",
		StartedAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 3, 1, 10, 5, 0, 0, time.UTC),
		Quizzes: []runner.QuizResult{{
			Name: "geo", Path: "/quiz/geo", Status: runner.StatusCompleted,
			Questions: []runner.QuestionResult{{
				ID: "q-1", Question: "What is the capital of France?",
				Answer: "Paris", Option: "Paris", Method: "exact", Answered: true,
			}},
			Claim: runner.ClaimResult{Attempted: true, Solved: true, Confirmed: true},
		}},
	}
	results.Summary = runner.RunSummary{
		QuizzesTotal: 1, QuizzesCompleted: 1, ClaimsConfirmed: 1,
		QuestionsTotal: 1, QuestionsAnswered: 1, CacheHits: 1, AnswerRate: 1,
	}
	paths, _ := runner.NewOutputPaths(outputDir, results.RunID)
	return results, paths
}

func TestRunCommandSuccess(t *testing.T) {
	configPath := setupRunEnv(t)
	outputDir := filepath.Join(filepath.Dir(configPath), "runs")

	var gotParams runner.RunParams
	stubRunAndWrite(t, func(_ context.Context, _ spec.Config, params runner.RunParams) (runner.Results, runner.OutputPaths, error) {
		gotParams = params
		results, paths := successfulResults(params.OutputDir)
		if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
			return runner.Results{}, runner.OutputPaths{}, err
		}
		return results, paths, nil
	})

	var stdout, stderr bytes.Buffer
	code := Run([]string{"run", "--config", configPath, "--output-dir", outputDir, "--ui", "plain", "geo"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("run failed (%d):\n%s", code, stderr.String())
	}
	if gotParams.OutputDir != outputDir {
		t.Fatalf("unexpected output dir %q", gotParams.OutputDir)
	}
	if len(gotParams.Quizzes) != 1 || gotParams.Quizzes[0] != "geo" {
		t.Fatalf("unexpected quiz selection %v", gotParams.Quizzes)
	}
	if gotParams.Secrets.SiteUsername != "alice" {
		t.Fatalf("secrets not threaded: %+v", gotParams.Secrets)
	}
	if !strings.Contains(stdout.String(), "Run 20250301T100000Z-abcdef finished") {
		t.Fatalf("summary missing:\n%s", stdout.String())
	}

	reportPath := filepath.Join(outputDir, "20250301T100000Z-abcdef", "report.html")
	if _, err := os.Stat(reportPath); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}

func TestRunCommandMissingSecrets(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".quizbot.yml")
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"init", "--config", configPath}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("init failed:\n%s", stderr.String())
	}
	t.Setenv("SITE_USERNAME", "")
	t.Setenv("SITE_PASSWORD", "")
	t.Setenv("CAPTCHA_API_KEY", "")

	stderr.Reset()
	code := Run([]string{"run", "--config", configPath, "--ui", "plain"}, &stdout, &stderr)
	if code != ExitLogin {
		t.Fatalf("expected login exit code, got %d:\n%s", code, stderr.String())
	}
}

func TestRunCommandExitCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"login", fmt.Errorf("%w: rejected", browser.ErrLoginFailed), ExitLogin},
		{"navigation", fmt.Errorf("%w: status 503", browser.ErrNavigation), ExitNavigation},
		{"captcha", fmt.Errorf("%w: quiz geo: zero balance", runner.ErrClaimFailed), ExitCaptcha},
		{"other", fmt.Errorf("disk full"), ExitError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			configPath := setupRunEnv(t)
			stubRunAndWrite(t, func(context.Context, spec.Config, runner.RunParams) (runner.Results, runner.OutputPaths, error) {
				return runner.Results{}, runner.OutputPaths{}, tc.err
			})
			var stdout, stderr bytes.Buffer
			code := Run([]string{"run", "--config", configPath, "--ui", "plain"}, &stdout, &stderr)
			if code != tc.want {
				t.Fatalf("expected exit %d, got %d:\n%s", tc.want, code, stderr.String())
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	if got := exitCodeFor(nil); got != ExitOK {
		t.Fatalf("nil error should map to ok, got %d", got)
	}
	if got := exitCodeFor(fmt.Errorf("wrap: %w", browser.ErrCaptchaNotFound)); got != ExitCaptcha {
		t.Fatalf("captcha-not-found should map to captcha exit, got %d", got)
	}
}
