package runner

import "time"

// QuestionEventType identifies a question status update for observers.
type QuestionEventType string

const (
	// QuestionScraped marks a question read off the page.
	QuestionScraped QuestionEventType = "scraped"
	// QuestionMatched marks a cache hit by one of the lookup rules.
	QuestionMatched QuestionEventType = "matched"
	// QuestionAskingLLM marks an in-flight fallback request.
	QuestionAskingLLM QuestionEventType = "asking_llm"
	// QuestionGuessed marks a random pick over the visible options.
	QuestionGuessed QuestionEventType = "guessed"
	// QuestionAnswered marks an option clicked successfully.
	QuestionAnswered QuestionEventType = "answered"
	// QuestionFailed marks a question that could not be answered.
	QuestionFailed QuestionEventType = "failed"
)

// QuestionEvent carries a single status update for a question.
type QuestionEvent struct {
	Quiz          string
	QuestionID    string
	QuestionIndex int
	QuestionText  string
	Type          QuestionEventType
	Method        string
	Score         float64
	Option        string
	Error         string
	EmittedAt     time.Time
}

// ClaimEventType identifies a reward-claim status update.
type ClaimEventType string

const (
	// ClaimCaptchaFound marks a discovered captcha widget.
	ClaimCaptchaFound ClaimEventType = "captcha_found"
	// ClaimNoCaptcha marks a claim page without a captcha widget.
	ClaimNoCaptcha ClaimEventType = "no_captcha"
	// ClaimSolving marks an in-flight solve request.
	ClaimSolving ClaimEventType = "solving"
	// ClaimTokenInjected marks a solved token written into the page.
	ClaimTokenInjected ClaimEventType = "token_injected"
	// ClaimSubmitted marks the claim control clicked.
	ClaimSubmitted ClaimEventType = "submitted"
	// ClaimConfirmed marks a confirmed reward claim.
	ClaimConfirmed ClaimEventType = "confirmed"
	// ClaimFailed marks a claim that did not complete.
	ClaimFailed ClaimEventType = "failed"
)

// ClaimEvent carries a reward-claim status update.
type ClaimEvent struct {
	Quiz      string
	Type      ClaimEventType
	SiteKey   string
	Error     string
	EmittedAt time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, site string)
	// OnQuizStart signals the start of a quiz.
	OnQuizStart(quizName string, path string, cachedAnswers int)
	// OnQuestionEvent delivers a question status update.
	OnQuestionEvent(event QuestionEvent)
	// OnClaimEvent delivers a reward-claim status update.
	OnClaimEvent(event ClaimEvent)
	// OnQuizEnd signals quiz completion.
	OnQuizEnd(quizName string, status string, reason *string)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

// nopObserver discards all events.
type nopObserver struct{}

func (nopObserver) OnRunStart(string, string)         {}
func (nopObserver) OnQuizStart(string, string, int)   {}
func (nopObserver) OnQuestionEvent(QuestionEvent)     {}
func (nopObserver) OnClaimEvent(ClaimEvent)           {}
func (nopObserver) OnQuizEnd(string, string, *string) {}
func (nopObserver) OnRunEnd(Results)                  {}
