// Package report renders a static HTML report for a finished run.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/a-h/templ"

	"quizbot/internal/runner"
)

// Page builds the full report document for a run.
func Page(results runner.Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			"<!doctype html>\n<html><head><meta charset=%q><title>Quiz run %s</title>%s</head><body>",
			"utf-8", templ.EscapeString(results.RunID), styleBlock); err != nil {
			return err
		}
		if err := header(results).Render(ctx, w); err != nil {
			return err
		}
		if err := summaryTable(results.Summary).Render(ctx, w); err != nil {
			return err
		}
		for _, quiz := range results.Quizzes {
			if err := quizSection(quiz).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body></html>\n")
		return err
	})
}

// header renders the run identity block.
func header(results runner.Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			"<h1>Quiz run %s</h1><p>%s &middot; %s &ndash; %s</p>",
			templ.EscapeString(results.RunID),
			templ.EscapeString(results.Site),
			results.StartedAt.Format("2006-01-02 15:04:05 MST"),
			results.FinishedAt.Format("15:04:05 MST"))
		return err
	})
}

// summaryTable renders the aggregate counters.
func summaryTable(summary runner.RunSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		rows := []struct {
			label string
			value string
		}{
			{"Quizzes completed", fmt.Sprintf("%d / %d", summary.QuizzesCompleted, summary.QuizzesTotal)},
			{"Claims confirmed", fmt.Sprintf("%d", summary.ClaimsConfirmed)},
			{"Questions answered", fmt.Sprintf("%d / %d", summary.QuestionsAnswered, summary.QuestionsTotal)},
			{"Cache hits", fmt.Sprintf("%d", summary.CacheHits)},
			{"LLM fallbacks", fmt.Sprintf("%d", summary.LLMFallbacks)},
			{"Guesses", fmt.Sprintf("%d", summary.Guesses)},
			{"Answer rate", fmt.Sprintf("%.0f%%", summary.AnswerRate*100)},
		}
		if _, err := io.WriteString(w, `<table class="summary">`); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, "<tr><th>%s</th><td>%s</td></tr>",
				templ.EscapeString(row.label), templ.EscapeString(row.value)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>")
		return err
	})
}

// quizSection renders one quiz with its question table and claim outcome.
func quizSection(quiz runner.QuizResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h2>%s <span class="status status-%s">%s</span></h2>`,
			templ.EscapeString(quiz.Name),
			templ.EscapeString(quiz.Status),
			templ.EscapeString(quiz.Status)); err != nil {
			return err
		}
		if quiz.FailureReason != nil {
			if _, err := fmt.Fprintf(w, `<p class="reason">%s</p>`, templ.EscapeString(*quiz.FailureReason)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<p class="claim">Claim: %s</p>`, templ.EscapeString(claimText(quiz.Claim))); err != nil {
			return err
		}
		if len(quiz.Questions) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, "<table><tr><th>#</th><th>Question</th><th>Answer</th><th>Method</th><th>Outcome</th></tr>"); err != nil {
			return err
		}
		for _, question := range quiz.Questions {
			outcome := "answered"
			if !question.Answered {
				outcome = "failed"
				if question.Error != "" {
					outcome = "failed: " + question.Error
				}
			}
			if _, err := fmt.Fprintf(w, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
				question.Index+1,
				templ.EscapeString(question.Question),
				templ.EscapeString(question.Option),
				templ.EscapeString(question.Method),
				templ.EscapeString(outcome)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>")
		return err
	})
}

// claimText summarizes a claim result in one phrase.
func claimText(claim runner.ClaimResult) string {
	switch {
	case !claim.Attempted:
		return "not attempted"
	case claim.Confirmed:
		return "confirmed"
	case claim.Error != "":
		return "failed (" + claim.Error + ")"
	default:
		return "not confirmed"
	}
}

// Render renders the report document into a string.
func Render(ctx context.Context, results runner.Results) (string, error) {
	var builder strings.Builder
	if err := Page(results).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// Write renders the report document to a file.
func Write(ctx context.Context, results runner.Results, path string) error {
	content, err := Render(ctx, results)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

const styleBlock = `<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
.summary th { background: #f4f4f4; }
.status { font-size: 0.7em; padding: 0.1rem 0.4rem; border-radius: 0.3rem; }
.status-completed { background: #d4f7d4; }
.status-aborted { background: #fff3c4; }
.status-error { background: #f7d4d4; }
.reason { color: #a33; }
</style>`
