package runner

import (
	"context"
	"fmt"

	"quizbot/internal/llm"
	"quizbot/internal/match"
	"quizbot/internal/quizfile"
	"quizbot/internal/spec"
)

// runSession holds the collaborators shared by every quiz in a run.
type runSession struct {
	page     QuizPage
	solver   CaptchaSolver
	provider llm.Provider
	matcher  match.Matcher
	file     *quizfile.File
	limits   spec.QuizzesConfig
	deps     RunDependencies
	observer RunObserver

	// attemptsUsed counts answer submissions across the whole run; the
	// attempt budget spans quizzes.
	attemptsUsed int
}

// attemptBudgetExhausted reports whether the run may submit more answers.
func (s *runSession) attemptBudgetExhausted() bool {
	return s.attemptsUsed >= s.limits.MaxAttempts
}

// runQuiz works through one quiz until completion or a cap is hit, then
// claims the reward. The returned error is non-nil only for navigation
// failures, which the caller may escalate.
func (s *runSession) runQuiz(ctx context.Context, quiz quizfile.Quiz) (QuizResult, error) {
	s.observer.OnQuizStart(quiz.Name, quiz.Path, len(quiz.Entries))
	result := QuizResult{Name: quiz.Name, Path: quiz.Path}

	if err := s.page.OpenQuiz(ctx, quiz.Path); err != nil {
		reason := err.Error()
		result.Status = StatusError
		result.FailureReason = &reason
		s.observer.OnQuizEnd(quiz.Name, result.Status, result.FailureReason)
		return result, err
	}

	status, reason := s.answerQuestions(ctx, quiz, &result)
	result.Status = status
	if reason != "" {
		result.FailureReason = &reason
	}
	if result.Status == StatusCompleted {
		result.Claim = s.claimReward(ctx, quiz.Name)
	}
	s.observer.OnQuizEnd(quiz.Name, result.Status, result.FailureReason)
	return result, nil
}

// answerQuestions drives the scrape/answer/advance loop. It stops when the
// quiz reports completion, the question element disappears, or one of the
// configured caps is hit.
func (s *runSession) answerQuestions(ctx context.Context, quiz quizfile.Quiz, result *QuizResult) (string, string) {
	pairs := s.file.Pairs(quiz.Name)
	tried := map[string]map[string]bool{}
	consecutiveFailures := 0

	for {
		if ctx.Err() != nil {
			return StatusAborted, ctx.Err().Error()
		}
		if s.attemptBudgetExhausted() {
			return StatusAborted, fmt.Sprintf("run attempt cap of %d reached", s.limits.MaxAttempts)
		}
		if len(result.Questions) >= s.limits.MaxQuestions {
			return StatusAborted, fmt.Sprintf("question cap of %d reached", s.limits.MaxQuestions)
		}

		done, err := s.page.Completed(ctx)
		if err != nil {
			return StatusError, err.Error()
		}
		if done {
			return StatusCompleted, ""
		}

		question, err := s.page.Question(ctx)
		if err != nil {
			return StatusError, err.Error()
		}
		if question == "" {
			return StatusCompleted, ""
		}
		options, err := s.page.Options(ctx)
		if err != nil {
			return StatusError, err.Error()
		}

		index := len(result.Questions)
		questionID := s.deps.NewID()
		startedAt := s.deps.Now()
		s.emitQuestion(quiz.Name, questionID, index, question, QuestionEvent{Type: QuestionScraped})

		if len(options) == 0 {
			consecutiveFailures++
			s.attemptsUsed++
			result.Questions = append(result.Questions, QuestionResult{
				ID: questionID, Index: index, Question: question,
				Error:           "no options visible",
				WallTimeSeconds: s.deps.Now().Sub(startedAt).Seconds(),
			})
			s.emitQuestion(quiz.Name, questionID, index, question, QuestionEvent{Type: QuestionFailed, Error: "no options visible"})
			if consecutiveFailures >= s.limits.MaxConsecutiveFailures {
				return StatusAborted, fmt.Sprintf("%d consecutive failures", consecutiveFailures)
			}
			continue
		}

		answer := s.resolveAnswer(ctx, quiz, questionID, index, question, options, pairs, tried[question])
		s.noteTried(tried, question, answer.Option)
		s.attemptsUsed++

		questionResult := QuestionResult{
			ID:       questionID,
			Index:    index,
			Question: question,
			Answer:   answer.Answer,
			Option:   answer.Option,
			Method:   string(answer.Method),
			Score:    answer.Score,
		}
		if err := s.page.Choose(ctx, answer.Option); err != nil {
			consecutiveFailures++
			questionResult.Error = err.Error()
			questionResult.WallTimeSeconds = s.deps.Now().Sub(startedAt).Seconds()
			result.Questions = append(result.Questions, questionResult)
			s.emitQuestion(quiz.Name, questionID, index, question, QuestionEvent{Type: QuestionFailed, Error: err.Error()})
			if consecutiveFailures >= s.limits.MaxConsecutiveFailures {
				return StatusAborted, fmt.Sprintf("%d consecutive failures", consecutiveFailures)
			}
			continue
		}
		consecutiveFailures = 0
		questionResult.Answered = true

		if err := s.page.Advance(ctx); err != nil {
			questionResult.Error = err.Error()
		}
		questionResult.WallTimeSeconds = s.deps.Now().Sub(startedAt).Seconds()
		result.Questions = append(result.Questions, questionResult)
		s.emitQuestion(quiz.Name, questionID, index, question, QuestionEvent{
			Type: QuestionAnswered, Method: string(answer.Method), Score: answer.Score, Option: answer.Option,
		})

		// Refresh pairs when the LLM taught us a new answer.
		if answer.Method == match.MethodLLM {
			pairs = s.file.Pairs(quiz.Name)
		}
	}
}

// resolveAnswer runs the lookup cascade: cached answers, then the LLM
// fallback, then a random guess. Options already tried for this question
// are avoided so retries make progress.
func (s *runSession) resolveAnswer(ctx context.Context, quiz quizfile.Quiz, questionID string, index int, question string, options []string, pairs []match.Pair, tried map[string]bool) match.Result {
	if result, ok := s.matcher.Lookup(question, options, pairs); ok && !tried[result.Option] {
		s.emitQuestion(quiz.Name, questionID, index, question, QuestionEvent{
			Type: QuestionMatched, Method: string(result.Method), Score: result.Score, Option: result.Option,
		})
		return result
	}

	if s.provider != nil {
		s.emitQuestion(quiz.Name, questionID, index, question, QuestionEvent{Type: QuestionAskingLLM})
		if reply, err := s.provider.SuggestAnswer(ctx, question, options); err == nil {
			if option, ok := s.matcher.MatchOption(reply, options); ok && !tried[option] {
				s.file.Append(quiz.Name, quiz.Path, question, reply)
				return match.Result{Answer: reply, Option: option, Method: match.MethodLLM}
			}
		}
	}

	candidates := make([]string, 0, len(options))
	for _, option := range options {
		if !tried[option] {
			candidates = append(candidates, option)
		}
	}
	if len(candidates) == 0 {
		candidates = options
	}
	option := candidates[s.deps.Intn(len(candidates))]
	s.emitQuestion(quiz.Name, questionID, index, question, QuestionEvent{Type: QuestionGuessed, Option: option})
	return match.Result{Answer: option, Option: option, Method: match.MethodGuess}
}

// noteTried records an option submitted for a question.
func (s *runSession) noteTried(tried map[string]map[string]bool, question, option string) {
	if tried[question] == nil {
		tried[question] = map[string]bool{}
	}
	tried[question][option] = true
}

// emitQuestion fills the shared event fields and forwards to the observer.
func (s *runSession) emitQuestion(quiz, questionID string, index int, question string, event QuestionEvent) {
	event.Quiz = quiz
	event.QuestionID = questionID
	event.QuestionIndex = index
	event.QuestionText = question
	event.EmittedAt = s.deps.Now()
	s.observer.OnQuestionEvent(event)
}
