package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunNoArgsPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(nil, &stdout, &stderr)
	if code != ExitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
	if !strings.Contains(stdout.String(), "quizbot <command>") {
		t.Fatalf("usage not printed:\n%s", stdout.String())
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"--help"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected ok exit, got %d", code)
	}
	for _, name := range []string{"init", "validate", "run", "history", "report", "balance"} {
		if !strings.Contains(stdout.String(), name) {
			t.Fatalf("usage missing command %q:\n%s", name, stdout.String())
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"bogus"}, &stdout, &stderr)
	if code != ExitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command: bogus") {
		t.Fatalf("unexpected stderr:\n%s", stderr.String())
	}
}

func TestInitThenValidate(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".quizbot.yml")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"init", "--config", configPath}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("init failed (%d):\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Wrote "+configPath) {
		t.Fatalf("init output missing config path:\n%s", stdout.String())
	}

	stdout.Reset()
	stderr.Reset()
	code = Run([]string{"validate", "--config", configPath}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("validate failed (%d):\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Config OK") {
		t.Fatalf("unexpected validate output:\n%s", stdout.String())
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".quizbot.yml")

	var stdout, stderr bytes.Buffer
	if code := Run([]string{"init", "--config", configPath}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("first init failed:\n%s", stderr.String())
	}
	stderr.Reset()
	if code := Run([]string{"init", "--config", configPath}, &stdout, &stderr); code != ExitError {
		t.Fatalf("expected error on second init, stderr:\n%s", stderr.String())
	}
	if !strings.Contains(stderr.String(), "already exists") {
		t.Fatalf("unexpected stderr:\n%s", stderr.String())
	}
}

func TestValidateBadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".quizbot.yml")
	writeFile(t, configPath, "version: 2\nsite:\n  base_url: \"not-a-url\"\n")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"validate", "--config", configPath}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("expected error exit, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Validation failed") {
		t.Fatalf("unexpected stderr:\n%s", stderr.String())
	}
}
