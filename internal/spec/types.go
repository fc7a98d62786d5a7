package spec

// Config is the root configuration schema loaded from .quizbot.yml.
type Config struct {
	Version int           `yaml:"version"`
	Site    SiteConfig    `yaml:"site"`
	Browser BrowserConfig `yaml:"browser"`
	Solver  SolverConfig  `yaml:"solver"`
	LLM     LLMConfig     `yaml:"llm"`
	Quizzes QuizzesConfig `yaml:"quizzes"`
	Output  OutputConfig  `yaml:"output"`
}

// SiteConfig describes the target website.
type SiteConfig struct {
	BaseURL       string `yaml:"base_url"`
	LoginPath     string `yaml:"login_path"`
	QuizIndexPath string `yaml:"quiz_index_path"`
	// FallbackSiteKey is used when captcha site key discovery fails.
	FallbackSiteKey string `yaml:"fallback_site_key"`
}

// BrowserConfig controls the Chrome session.
type BrowserConfig struct {
	Headless           bool   `yaml:"headless"`
	UserAgent          string `yaml:"user_agent"`
	NavTimeoutSeconds  int    `yaml:"nav_timeout_seconds"`
	StepTimeoutSeconds int    `yaml:"step_timeout_seconds"`
	ClickRetries       int    `yaml:"click_retries"`
}

// SolverConfig controls the captcha solving service client.
type SolverConfig struct {
	Provider            string `yaml:"provider"`
	BaseURL             string `yaml:"base_url"`
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	PollAttempts        int    `yaml:"poll_attempts"`
}

// LLMConfig controls the fallback answer provider.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
}

// QuizzesConfig controls the quiz loop and the local answer cache.
type QuizzesConfig struct {
	File                   string  `yaml:"file"`
	MaxQuestions           int     `yaml:"max_questions"`
	MaxAttempts            int     `yaml:"max_attempts"`
	MaxConsecutiveFailures int     `yaml:"max_consecutive_failures"`
	SimilarityThreshold    float64 `yaml:"similarity_threshold"`
}

// OutputConfig controls where run artifacts are written.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	HistoryDB string `yaml:"history_db"`
}
