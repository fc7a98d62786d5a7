package live

import (
	"fmt"

	"quizbot/internal/runner"
)

// Reduce applies a question event to the UI state.
func Reduce(state State, event runner.QuestionEvent) State {
	state = ensureRow(state, event)
	state = applyQuestionEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ReduceClaim applies a reward-claim event to the UI state.
func ReduceClaim(state State, event runner.ClaimEvent) State {
	state.ClaimStatus = claimLabel(event.Type)
	switch event.Type {
	case runner.ClaimFailed:
		state.LastEvent = "Claim failed: " + event.Error
	case runner.ClaimConfirmed:
		state.LastEvent = "Claim confirmed"
	case runner.ClaimSolving:
		state.LastEvent = "Solving captcha"
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event runner.QuestionEvent) State {
	if event.QuestionIndex < 0 {
		return state
	}
	if event.QuestionIndex < len(state.Rows) {
		return state
	}
	rows := make([]QuestionRow, event.QuestionIndex+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = QuestionRow{Index: i, Status: runner.QuestionScraped}
	}
	state.Rows = rows
	return state
}

// applyQuestionEvent updates a row with the given event.
func applyQuestionEvent(state State, event runner.QuestionEvent) State {
	if event.QuestionIndex < 0 || event.QuestionIndex >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.QuestionIndex]
	if row.ID == "" {
		row.ID = event.QuestionID
	}
	if row.Text == "" {
		row.Text = event.QuestionText
	}
	row.Status = event.Type
	switch event.Type {
	case runner.QuestionScraped:
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	case runner.QuestionMatched, runner.QuestionGuessed:
		row.Method = event.Method
		if event.Type == runner.QuestionGuessed {
			row.Method = "guess"
		}
		row.Option = event.Option
		row.Score = event.Score
	case runner.QuestionAnswered:
		row.Method = event.Method
		row.Option = event.Option
		row.Score = event.Score
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
	case runner.QuestionFailed:
		row.Error = event.Error
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
	}
	state.Rows[event.QuestionIndex] = row
	return state
}

// recount recomputes status counts for the current rows.
func recount(rows []QuestionRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.QuestionAskingLLM:
			counts.AskingLLM++
		case runner.QuestionAnswered:
			counts.Answered++
			switch row.Method {
			case "exact", "substring", "similar":
				counts.CacheHits++
			case "guess":
				counts.Guesses++
			}
		case runner.QuestionFailed:
			counts.Failed++
		default:
			counts.Pending++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.QuestionEvent) string {
	switch event.Type {
	case runner.QuestionMatched:
		return fmt.Sprintf("Q%d cache hit (%s)", event.QuestionIndex+1, event.Method)
	case runner.QuestionAskingLLM:
		return fmt.Sprintf("Q%d asking the model", event.QuestionIndex+1)
	case runner.QuestionGuessed:
		return fmt.Sprintf("Q%d guessing %q", event.QuestionIndex+1, event.Option)
	case runner.QuestionAnswered:
		return fmt.Sprintf("Q%d answered %q", event.QuestionIndex+1, event.Option)
	case runner.QuestionFailed:
		return fmt.Sprintf("Q%d failed: %s", event.QuestionIndex+1, event.Error)
	}
	return ""
}

// claimLabel maps claim event types to display labels.
func claimLabel(eventType runner.ClaimEventType) string {
	switch eventType {
	case runner.ClaimCaptchaFound:
		return "captcha found"
	case runner.ClaimNoCaptcha:
		return "no captcha"
	case runner.ClaimSolving:
		return "solving"
	case runner.ClaimTokenInjected:
		return "token injected"
	case runner.ClaimSubmitted:
		return "submitted"
	case runner.ClaimConfirmed:
		return "confirmed"
	case runner.ClaimFailed:
		return "failed"
	default:
		return string(eventType)
	}
}
