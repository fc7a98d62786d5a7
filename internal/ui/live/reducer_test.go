package live

import (
	"testing"
	"time"

	"quizbot/internal/runner"
)

// TestReduceQuestionLifecycle verifies core status transitions are recorded.
func TestReduceQuestionLifecycle(t *testing.T) {
	start := time.Now()
	state := State{}
	state = Reduce(state, event(0, runner.QuestionScraped, "", start))
	matched := event(0, runner.QuestionMatched, "", start)
	matched.Method = "exact"
	matched.Option = "Paris"
	matched.Score = 1
	state = Reduce(state, matched)
	answered := event(0, runner.QuestionAnswered, "", start.Add(150*time.Millisecond))
	answered.Method = "exact"
	answered.Option = "Paris"
	state = Reduce(state, answered)

	row := state.Rows[0]
	if row.Status != runner.QuestionAnswered {
		t.Fatalf("expected answered status, got %s", row.Status)
	}
	if row.Option != "Paris" || row.Method != "exact" {
		t.Fatalf("unexpected row %+v", row)
	}
	if row.FinishedAt.Sub(row.StartedAt) != 150*time.Millisecond {
		t.Fatalf("unexpected duration %s", row.FinishedAt.Sub(row.StartedAt))
	}
	if state.Counts.Answered != 1 || state.Counts.CacheHits != 1 {
		t.Fatalf("unexpected counts %+v", state.Counts)
	}
}

// TestReduceFailureRecordsError verifies failures keep their error text.
func TestReduceFailureRecordsError(t *testing.T) {
	state := State{}
	state = Reduce(state, event(0, runner.QuestionScraped, "", time.Now()))
	state = Reduce(state, event(0, runner.QuestionFailed, "element detached", time.Now()))

	row := state.Rows[0]
	if row.Status != runner.QuestionFailed || row.Error != "element detached" {
		t.Fatalf("unexpected row %+v", row)
	}
	if state.Counts.Failed != 1 {
		t.Fatalf("expected failed count, got %d", state.Counts.Failed)
	}
}

// TestReduceGrowsRows verifies sparse indices create placeholder rows.
func TestReduceGrowsRows(t *testing.T) {
	state := State{}
	state = Reduce(state, event(2, runner.QuestionScraped, "", time.Now()))
	if len(state.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(state.Rows))
	}
	if state.Counts.Pending != 3 {
		t.Fatalf("expected 3 pending, got %d", state.Counts.Pending)
	}
}

// TestReduceClaim verifies claim updates reach the quiz line and footer.
func TestReduceClaim(t *testing.T) {
	state := State{}
	state = ReduceClaim(state, runner.ClaimEvent{Type: runner.ClaimSolving})
	if state.ClaimStatus != "solving" {
		t.Fatalf("unexpected claim status %q", state.ClaimStatus)
	}
	state = ReduceClaim(state, runner.ClaimEvent{Type: runner.ClaimFailed, Error: "zero balance"})
	if state.ClaimStatus != "failed" || state.LastEvent != "Claim failed: zero balance" {
		t.Fatalf("unexpected state %+v", state)
	}
}

// event builds a QuestionEvent for testing.
func event(index int, kind runner.QuestionEventType, errMsg string, when time.Time) runner.QuestionEvent {
	return runner.QuestionEvent{
		Quiz:          "geo",
		QuestionIndex: index,
		QuestionText:  "Question",
		Type:          kind,
		Error:         errMsg,
		EmittedAt:     when,
	}
}
