package runner

import (
	"context"
	"math/rand"
	"time"

	"quizbot/internal/browser"
	"quizbot/internal/captcha"
	"quizbot/internal/config"
	"quizbot/internal/llm"
	"quizbot/internal/spec"

	"github.com/google/uuid"
)

// QuizPage is the browser surface the run loop drives.
type QuizPage interface {
	Login(ctx context.Context, username, password string) error
	OpenQuiz(ctx context.Context, path string) error
	Question(ctx context.Context) (string, error)
	Options(ctx context.Context) ([]string, error)
	Choose(ctx context.Context, option string) error
	Advance(ctx context.Context) error
	Completed(ctx context.Context) (bool, error)
	FindCaptcha(ctx context.Context) (pageURL, siteKey string, err error)
	InjectCaptchaToken(ctx context.Context, token string) error
	SubmitClaim(ctx context.Context) error
	ClaimConfirmed(ctx context.Context) (bool, error)
	Close() error
}

// CaptchaSolver exchanges a captcha challenge for a response token.
type CaptchaSolver interface {
	SolveRecaptcha(ctx context.Context, websiteURL, siteKey string) (string, error)
}

// PageFactory builds the browser page for a run.
type PageFactory func(ctx context.Context, browserCfg spec.BrowserConfig, siteCfg spec.SiteConfig) (QuizPage, error)

// SolverFactory builds the captcha solver client.
type SolverFactory func(apiKey string, solverCfg spec.SolverConfig) (CaptchaSolver, error)

// ProviderFactory builds the LLM fallback provider. A nil provider with a
// nil error disables the fallback.
type ProviderFactory func(llmCfg spec.LLMConfig, apiKey string) (llm.Provider, error)

// RunDependencies allows injecting factories, clocks, and randomness.
type RunDependencies struct {
	NewPage     PageFactory
	NewSolver   SolverFactory
	NewProvider ProviderFactory
	RunID       func() (string, error)
	NewID       func() string
	Now         func() time.Time
	Intn        func(n int) int
}

// RunParams configures a run invocation.
type RunParams struct {
	QuizFilePath string
	OutputDir    string
	Quizzes      []string
	Secrets      config.Secrets
	Observer     RunObserver
	Deps         RunDependencies
}

// defaultPageFactory wraps the chromedp page.
func defaultPageFactory(ctx context.Context, browserCfg spec.BrowserConfig, siteCfg spec.SiteConfig) (QuizPage, error) {
	return browser.NewPage(ctx, browserCfg, siteCfg)
}

// defaultSolverFactory wraps the solving-service client with the
// configured poll cadence.
func defaultSolverFactory(apiKey string, solverCfg spec.SolverConfig) (CaptchaSolver, error) {
	client, err := captcha.NewClient(apiKey, solverCfg.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	if solverCfg.PollIntervalSeconds > 0 {
		client.PollInterval = time.Duration(solverCfg.PollIntervalSeconds) * time.Second
	}
	if solverCfg.PollAttempts > 0 {
		client.PollAttempts = solverCfg.PollAttempts
	}
	return client, nil
}

// defaultProviderFactory builds the OpenRouter provider, or nothing when
// no API key is configured.
func defaultProviderFactory(llmCfg spec.LLMConfig, apiKey string) (llm.Provider, error) {
	if apiKey == "" || llmCfg.Provider == "" {
		return nil, nil
	}
	return llm.NewOpenRouterProvider(llmCfg.Model, apiKey, llmCfg.BaseURL, nil)
}

// withDefaults fills unset dependencies with production implementations.
func (deps RunDependencies) withDefaults() RunDependencies {
	if deps.NewPage == nil {
		deps.NewPage = defaultPageFactory
	}
	if deps.NewSolver == nil {
		deps.NewSolver = defaultSolverFactory
	}
	if deps.NewProvider == nil {
		deps.NewProvider = defaultProviderFactory
	}
	if deps.RunID == nil {
		deps.RunID = NewRunID
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Intn == nil {
		deps.Intn = rand.Intn
	}
	return deps
}
