package runner

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlainObserverWritesLifecycle(t *testing.T) {
	var buf bytes.Buffer
	observer := NewPlainObserver(&buf, true)

	observer.OnRunStart("20250301T100000Z-abcdef", "https://quiz.example.test")
	observer.OnQuizStart("geo", "/quiz/geo", 3)
	observer.OnQuestionEvent(QuestionEvent{Type: QuestionScraped, QuestionIndex: 0, QuestionText: "What is the capital of France?"})
	observer.OnQuestionEvent(QuestionEvent{Type: QuestionAnswered, QuestionIndex: 0, Option: "Paris", Method: "exact"})
	observer.OnClaimEvent(ClaimEvent{Type: ClaimConfirmed})
	observer.OnQuizEnd("geo", StatusCompleted, nil)
	observer.OnRunEnd(Results{Summary: RunSummary{QuizzesTotal: 1, QuizzesCompleted: 1, ClaimsConfirmed: 1, QuestionsTotal: 1, QuestionsAnswered: 1}})

	out := buf.String()
	for _, want := range []string{
		"run 20250301T100000Z-abcdef",
		"quiz geo (/quiz/geo): 3 cached answers",
		"q1: What is the capital of France?",
		`q1: answered "Paris" via exact`,
		"claim: confirmed",
		"quiz geo: completed",
		"done: 1/1 quizzes completed, 1 claims confirmed, 1/1 questions answered",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI codes with color disabled:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
	long := strings.Repeat("a", 80)
	got := truncate(long, 70)
	if len([]rune(got)) != 70 || !strings.HasSuffix(got, "…") {
		t.Fatalf("unexpected truncation %q", got)
	}
}
