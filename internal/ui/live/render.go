package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Run " + state.RunID
	if state.Site != "" {
		line += " | Site: " + state.Site
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Pending: " + fmtInt(counts.Pending) +
		" Asking: " + fmtInt(counts.AskingLLM) +
		" Answered: " + fmtInt(counts.Answered) +
		" Failed: " + fmtInt(counts.Failed) +
		" Cache: " + fmtInt(counts.CacheHits) +
		" Guess: " + fmtInt(counts.Guesses)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderQuizLine renders the current quiz line.
func renderQuizLine(state State, noColor bool) string {
	if state.QuizName == "" {
		return ""
	}
	line := "Quiz " + state.QuizName
	if state.QuizPath != "" {
		line += " | " + state.QuizPath
	}
	line += " | " + fmtInt(state.CachedAnswers) + " cached"
	if state.ClaimStatus != "" {
		line += " | claim: " + state.ClaimStatus
	}
	return stylize(line, noColor, lipgloss.Color("240"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
