package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiGray  = "\x1b[90m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

type lineStyle int

const (
	styleDefault lineStyle = iota
	styleQuiz
	styleSuccess
	styleError
)

// PlainObserver writes run events as plain lines. It is the observer used
// when no live UI is attached.
type PlainObserver struct {
	mu      sync.Mutex
	writer  io.Writer
	palette linePalette
}

// NewPlainObserver builds an observer writing to the given writer.
func NewPlainObserver(writer io.Writer, noColor bool) *PlainObserver {
	return &PlainObserver{
		writer:  writer,
		palette: paletteFor(writer, noColor),
	}
}

func (o *PlainObserver) logf(style lineStyle, format string, args ...any) {
	if o.writer == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(o.writer, "%s\n", o.palette.apply(style, line))
}

func (o *PlainObserver) OnRunStart(runID string, site string) {
	o.logf(styleDefault, "run %s against %s", runID, site)
}

func (o *PlainObserver) OnQuizStart(quizName string, path string, cachedAnswers int) {
	o.logf(styleQuiz, "quiz %s (%s): %d cached answers", quizName, path, cachedAnswers)
}

func (o *PlainObserver) OnQuestionEvent(event QuestionEvent) {
	switch event.Type {
	case QuestionScraped:
		o.logf(styleDefault, "  q%d: %s", event.QuestionIndex+1, truncate(event.QuestionText, 70))
	case QuestionMatched:
		o.logf(styleDefault, "  q%d: cache hit (%s, score %.2f)", event.QuestionIndex+1, event.Method, event.Score)
	case QuestionAskingLLM:
		o.logf(styleDefault, "  q%d: no cached answer, asking the model", event.QuestionIndex+1)
	case QuestionGuessed:
		o.logf(styleDefault, "  q%d: guessing %q", event.QuestionIndex+1, event.Option)
	case QuestionAnswered:
		o.logf(styleSuccess, "  q%d: answered %q via %s", event.QuestionIndex+1, event.Option, event.Method)
	case QuestionFailed:
		o.logf(styleError, "  q%d: failed: %s", event.QuestionIndex+1, event.Error)
	}
}

func (o *PlainObserver) OnClaimEvent(event ClaimEvent) {
	switch event.Type {
	case ClaimCaptchaFound:
		o.logf(styleDefault, "  claim: captcha found (sitekey %s)", event.SiteKey)
	case ClaimNoCaptcha:
		o.logf(styleDefault, "  claim: no captcha on page")
	case ClaimSolving:
		o.logf(styleDefault, "  claim: solving captcha")
	case ClaimTokenInjected:
		o.logf(styleDefault, "  claim: token injected")
	case ClaimSubmitted:
		o.logf(styleDefault, "  claim: submitted")
	case ClaimConfirmed:
		o.logf(styleSuccess, "  claim: confirmed")
	case ClaimFailed:
		o.logf(styleError, "  claim: failed: %s", event.Error)
	}
}

func (o *PlainObserver) OnQuizEnd(quizName string, status string, reason *string) {
	if reason != nil {
		o.logf(styleError, "quiz %s: %s (%s)", quizName, status, *reason)
		return
	}
	o.logf(styleQuiz, "quiz %s: %s", quizName, status)
}

func (o *PlainObserver) OnRunEnd(results Results) {
	summary := results.Summary
	o.logf(styleSuccess, "done: %d/%d quizzes completed, %d claims confirmed, %d/%d questions answered",
		summary.QuizzesCompleted, summary.QuizzesTotal, summary.ClaimsConfirmed,
		summary.QuestionsAnswered, summary.QuestionsTotal)
}

// truncate shortens long question texts for log lines.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-1]) + "…"
}

type linePalette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) linePalette {
	if noColor {
		return linePalette{enabled: false}
	}
	return linePalette{enabled: shouldUseStyling(writer)}
}

func shouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

func (p linePalette) apply(style lineStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case styleQuiz:
		return ansiBold + ansiBlue + text + ansiReset
	case styleSuccess:
		return ansiBold + ansiGreen + text + ansiReset
	case styleError:
		return ansiBold + ansiRed + text + ansiReset
	default:
		return ansiDim + ansiGray + text + ansiReset
	}
}
