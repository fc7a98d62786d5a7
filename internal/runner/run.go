package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quizbot/internal/match"
	"quizbot/internal/quizfile"
	"quizbot/internal/spec"
)

// Run logs in, works through the selected quizzes, claims rewards, and
// persists any newly learned answers. Per-quiz failures are recorded and
// skipped, but the run stops early once quizzes fail consecutively up to
// the configured cap or the run-wide attempt budget is spent; login and
// session setup failures abort the run.
func Run(ctx context.Context, cfg spec.Config, params RunParams) (Results, error) {
	deps := params.Deps.withDefaults()
	observer := params.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	runID, err := deps.RunID()
	if err != nil {
		return Results{}, fmt.Errorf("generate run ID: %w", err)
	}
	startedAt := deps.Now()

	file, err := quizfile.Load(params.QuizFilePath)
	if err != nil {
		return Results{}, err
	}
	quizzes, err := selectQuizzes(file.Quizzes(), params.Quizzes)
	if err != nil {
		return Results{}, err
	}

	solver, err := deps.NewSolver(params.Secrets.CaptchaAPIKey, cfg.Solver)
	if err != nil {
		return Results{}, fmt.Errorf("captcha solver: %w", err)
	}
	provider, err := deps.NewProvider(cfg.LLM, params.Secrets.LLMAPIKey)
	if err != nil {
		return Results{}, fmt.Errorf("llm provider: %w", err)
	}

	observer.OnRunStart(runID, cfg.Site.BaseURL)

	page, err := deps.NewPage(ctx, cfg.Browser, cfg.Site)
	if err != nil {
		return Results{}, fmt.Errorf("start browser: %w", err)
	}
	defer page.Close()

	if err := page.Login(ctx, params.Secrets.SiteUsername, params.Secrets.SitePassword); err != nil {
		return Results{}, err
	}

	session := &runSession{
		page:     page,
		solver:   solver,
		provider: provider,
		matcher:  match.NewMatcher(cfg.Quizzes.SimilarityThreshold),
		file:     file,
		limits:   cfg.Quizzes,
		deps:     deps,
		observer: observer,
	}

	quizResults := make([]QuizResult, 0, len(quizzes))
	var firstNavErr error
	consecutiveQuizFailures := 0
	for _, quiz := range quizzes {
		if ctx.Err() != nil {
			return Results{}, ctx.Err()
		}
		quizResult, err := session.runQuiz(ctx, quiz)
		if err != nil && firstNavErr == nil {
			firstNavErr = err
		}
		quizResults = append(quizResults, quizResult)

		if quizResult.Status == StatusCompleted {
			consecutiveQuizFailures = 0
		} else {
			consecutiveQuizFailures++
			if consecutiveQuizFailures >= cfg.Quizzes.MaxConsecutiveFailures {
				break
			}
		}
		if session.attemptBudgetExhausted() {
			break
		}
	}

	// Persist learned answers even when the run ends badly, and keep the
	// results even when persisting fails.
	var saveErr error
	if file.Dirty() {
		if err := file.Save(); err != nil {
			saveErr = fmt.Errorf("save quiz file: %w", err)
		}
	}

	results := Results{
		RunID:      runID,
		Site:       cfg.Site.BaseURL,
		StartedAt:  startedAt,
		FinishedAt: deps.Now(),
		Quizzes:    quizResults,
		Summary:    summarize(quizResults),
	}
	observer.OnRunEnd(results)
	if saveErr != nil {
		return results, saveErr
	}
	return results, escalate(results, firstNavErr)
}

// RunAndWrite runs and writes run artifacts to the output directory.
func RunAndWrite(ctx context.Context, cfg spec.Config, params RunParams) (Results, OutputPaths, error) {
	results, runErr := Run(ctx, cfg, params)
	if results.RunID == "" {
		return results, OutputPaths{}, runErr
	}
	paths, err := WriteRunOutputs(results, params.OutputDir)
	if err != nil {
		return results, OutputPaths{}, err
	}
	return results, paths, runErr
}

// selectQuizzes filters the cached quizzes by name. An empty selector
// means all quizzes.
func selectQuizzes(quizzes []quizfile.Quiz, names []string) ([]quizfile.Quiz, error) {
	if len(quizzes) == 0 {
		return nil, fmt.Errorf("quiz file lists no quizzes")
	}
	if len(names) == 0 {
		return quizzes, nil
	}
	byName := make(map[string]quizfile.Quiz, len(quizzes))
	for _, quiz := range quizzes {
		byName[quiz.Name] = quiz
	}
	selected := make([]quizfile.Quiz, 0, len(names))
	for _, name := range names {
		quiz, ok := byName[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("unknown quiz %q", name)
		}
		selected = append(selected, quiz)
	}
	return selected, nil
}

// escalate turns a run that achieved nothing because of one failure class
// into an error, so callers can exit non-zero. A run that answered
// questions or confirmed claims despite failures succeeds.
func escalate(results Results, navErr error) error {
	if results.Summary.QuestionsAnswered > 0 || results.Summary.ClaimsConfirmed > 0 {
		return nil
	}
	if navErr != nil {
		return navErr
	}
	for _, quiz := range results.Quizzes {
		if quiz.Claim.Attempted && !quiz.Claim.Confirmed && quiz.Claim.Error != "" {
			return fmt.Errorf("%w: quiz %s: %s", ErrClaimFailed, quiz.Name, quiz.Claim.Error)
		}
	}
	return nil
}

// ErrClaimFailed marks a run whose only outcome was failed reward claims.
var ErrClaimFailed = errors.New("reward claim failed")
