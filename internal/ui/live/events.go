package live

import "quizbot/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventQuizStart signals the start of a quiz.
	EventQuizStart
	// EventQuestion delivers a question status update.
	EventQuestion
	// EventClaim delivers a reward-claim status update.
	EventClaim
	// EventQuizEnd signals quiz completion.
	EventQuizEnd
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind          EventKind
	RunID         string
	Site          string
	QuizName      string
	QuizPath      string
	CachedAnswers int
	QuizStatus    string
	QuizReason    *string
	Question      runner.QuestionEvent
	Claim         runner.ClaimEvent
}
