package runner

import "time"

// Quiz and run statuses recorded in results.
const (
	StatusCompleted = "completed"
	StatusAborted   = "aborted"
	StatusError     = "error"
)

type Results struct {
	RunID      string       `json:"run_id"`
	Site       string       `json:"site"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Quizzes    []QuizResult `json:"quizzes"`
	Summary    RunSummary   `json:"summary"`
}

type QuizResult struct {
	Name          string           `json:"name"`
	Path          string           `json:"path"`
	Status        string           `json:"status"`
	FailureReason *string          `json:"failure_reason"`
	Questions     []QuestionResult `json:"questions"`
	Claim         ClaimResult      `json:"claim"`
}

type QuestionResult struct {
	ID              string  `json:"id"`
	Index           int     `json:"index"`
	Question        string  `json:"question"`
	Answer          string  `json:"answer"`
	Option          string  `json:"option"`
	Method          string  `json:"method"`
	Score           float64 `json:"score,omitempty"`
	Answered        bool    `json:"answered"`
	Error           string  `json:"error,omitempty"`
	WallTimeSeconds float64 `json:"wall_time_seconds"`
}

type ClaimResult struct {
	Attempted bool   `json:"attempted"`
	SiteKey   string `json:"site_key,omitempty"`
	Solved    bool   `json:"solved"`
	Confirmed bool   `json:"confirmed"`
	Error     string `json:"error,omitempty"`
}

type RunSummary struct {
	QuizzesTotal      int     `json:"quizzes_total"`
	QuizzesCompleted  int     `json:"quizzes_completed"`
	ClaimsConfirmed   int     `json:"claims_confirmed"`
	QuestionsTotal    int     `json:"questions_total"`
	QuestionsAnswered int     `json:"questions_answered"`
	QuestionsFailed   int     `json:"questions_failed"`
	CacheHits         int     `json:"cache_hits"`
	LLMFallbacks      int     `json:"llm_fallbacks"`
	Guesses           int     `json:"guesses"`
	AnswerRate        float64 `json:"answer_rate"`
}

// summarize aggregates quiz results into a run summary.
func summarize(quizzes []QuizResult) RunSummary {
	summary := RunSummary{
		QuizzesTotal: len(quizzes),
	}
	for _, quiz := range quizzes {
		if quiz.Status == StatusCompleted {
			summary.QuizzesCompleted++
		}
		if quiz.Claim.Confirmed {
			summary.ClaimsConfirmed++
		}
		for _, question := range quiz.Questions {
			summary.QuestionsTotal++
			if question.Answered {
				summary.QuestionsAnswered++
			} else {
				summary.QuestionsFailed++
			}
			switch question.Method {
			case "exact", "substring", "similar":
				summary.CacheHits++
			case "llm":
				summary.LLMFallbacks++
			case "guess":
				summary.Guesses++
			}
		}
	}
	if summary.QuestionsTotal > 0 {
		summary.AnswerRate = float64(summary.QuestionsAnswered) / float64(summary.QuestionsTotal)
	}
	return summary
}
