package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variable names for credentials. Secrets never live in the
// config file.
const (
	EnvSiteUsername  = "SITE_USERNAME"
	EnvSitePassword  = "SITE_PASSWORD"
	EnvCaptchaAPIKey = "CAPTCHA_API_KEY"
	EnvLLMAPIKey     = "LLM_API_KEY"
)

// Secrets holds credentials read from the environment.
type Secrets struct {
	SiteUsername  string
	SitePassword  string
	CaptchaAPIKey string
	// LLMAPIKey is optional; when empty the LLM fallback is disabled.
	LLMAPIKey string
}

// SecretsFromEnv reads credentials from the environment. Site credentials
// and the captcha key are required for a run; the LLM key is optional.
func SecretsFromEnv() (Secrets, error) {
	secrets := Secrets{
		SiteUsername:  strings.TrimSpace(os.Getenv(EnvSiteUsername)),
		SitePassword:  strings.TrimSpace(os.Getenv(EnvSitePassword)),
		CaptchaAPIKey: strings.TrimSpace(os.Getenv(EnvCaptchaAPIKey)),
		LLMAPIKey:     strings.TrimSpace(os.Getenv(EnvLLMAPIKey)),
	}
	var missing []string
	if secrets.SiteUsername == "" {
		missing = append(missing, EnvSiteUsername)
	}
	if secrets.SitePassword == "" {
		missing = append(missing, EnvSitePassword)
	}
	if secrets.CaptchaAPIKey == "" {
		missing = append(missing, EnvCaptchaAPIKey)
	}
	if len(missing) > 0 {
		return Secrets{}, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return secrets, nil
}
