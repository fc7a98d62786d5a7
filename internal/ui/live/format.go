package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"quizbot/internal/runner"
)

// formatIndex formats a question index.
func formatIndex(index int) string {
	return "Q" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatQuestionText truncates question text for display.
func formatQuestionText(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return ""
	}
	const limit = 80
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatStatus renders a status string for a row.
func formatStatus(row QuestionRow, noColor bool) string {
	text := statusLabel(row.Status)
	if noColor {
		return text
	}
	return statusStyle(row.Status).Render(text)
}

// statusLabel maps status codes to display labels.
func statusLabel(status runner.QuestionEventType) string {
	switch status {
	case runner.QuestionScraped:
		return "scraped"
	case runner.QuestionMatched:
		return "matched"
	case runner.QuestionAskingLLM:
		return "asking"
	case runner.QuestionGuessed:
		return "guessing"
	case runner.QuestionAnswered:
		return "answered"
	case runner.QuestionFailed:
		return "failed"
	default:
		return string(status)
	}
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row QuestionRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// formatQuizEnd formats a quiz completion message.
func formatQuizEnd(quizName, status string, reason *string) string {
	if reason != nil {
		return "Quiz " + quizName + " " + status + " (" + *reason + ")"
	}
	return "Quiz " + quizName + " " + status
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.QuestionEventType) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case runner.QuestionAnswered:
		color = lipgloss.Color("42")
	case runner.QuestionFailed:
		color = lipgloss.Color("196")
	case runner.QuestionAskingLLM:
		color = lipgloss.Color("39")
	case runner.QuestionMatched, runner.QuestionGuessed:
		color = lipgloss.Color("33")
	case runner.QuestionScraped:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}
