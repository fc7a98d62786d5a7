package live

import (
	"time"

	"quizbot/internal/runner"
)

// QuestionRow holds UI state for a single question.
type QuestionRow struct {
	Index      int
	ID         string
	Text       string
	Status     runner.QuestionEventType
	Method     string
	Option     string
	Score      float64
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Pending   int
	AskingLLM int
	Answered  int
	Failed    int
	CacheHits int
	Guesses   int
}

// State captures the live UI state for the current quiz.
type State struct {
	RunID         string
	Site          string
	QuizName      string
	QuizPath      string
	CachedAnswers int
	ClaimStatus   string
	StartedAt     time.Time
	LastEvent     string
	Rows          []QuestionRow
	Counts        StatusCounts
}
