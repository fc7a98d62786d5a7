package runner

import (
	"path/filepath"
	"testing"
	"time"
)

func TestWriteAndReadRunOutputs(t *testing.T) {
	results := Results{
		RunID:      "20250301T100000Z-abcdef",
		Site:       "https://quiz.example.test",
		StartedAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 3, 1, 10, 5, 0, 0, time.UTC),
		Quizzes: []QuizResult{{
			Name:   "geo",
			Path:   "/quiz/geo",
			Status: StatusCompleted,
			Questions: []QuestionResult{{
				ID: "q-1", Question: "What is the capital of France?",
				Answer: "Paris", Option: "Paris", Method: "exact", Answered: true,
			}},
			Claim: ClaimResult{Attempted: true, Solved: true, Confirmed: true},
		}},
	}
	results.Summary = summarize(results.Quizzes)

	dir := t.TempDir()
	paths, err := WriteRunOutputs(results, dir)
	if err != nil {
		t.Fatalf("WriteRunOutputs: %v", err)
	}
	if paths.RunDir() != filepath.Join(dir, results.RunID) {
		t.Fatalf("unexpected run dir %s", paths.RunDir())
	}

	loaded, err := ReadResults(paths.ResultsPath())
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}
	if loaded.RunID != results.RunID || len(loaded.Quizzes) != 1 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	if loaded.Summary.CacheHits != 1 || loaded.Summary.ClaimsConfirmed != 1 {
		t.Fatalf("unexpected summary %+v", loaded.Summary)
	}
}

func TestWriteRunOutputsRequiresDir(t *testing.T) {
	if _, err := WriteRunOutputs(Results{RunID: "x"}, ""); err == nil {
		t.Fatalf("expected error for missing output dir")
	}
}
