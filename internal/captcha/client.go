// Package captcha submits reCAPTCHA challenges to a paid solving service
// and polls for the response token.
package captcha

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// defaultBaseURL is the anti-captcha API endpoint.
const defaultBaseURL = "https://api.anti-captcha.com"

// ErrTimeout indicates the solve did not finish within the poll budget.
var ErrTimeout = errors.New("captcha solve timed out")

// APIError is an error reported by the solving service.
type APIError struct {
	Code        string
	Description string
}

// Error renders the service error code and description.
func (err *APIError) Error() string {
	if err.Description == "" {
		return fmt.Sprintf("captcha api error %s", err.Code)
	}
	return fmt.Sprintf("captcha api error %s: %s", err.Code, err.Description)
}

// HTTPDoer abstracts the HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to a task-based captcha solving API: create a task, then
// poll for its result.
type Client struct {
	APIKey       string
	BaseURL      string
	Doer         HTTPDoer
	PollInterval time.Duration
	PollAttempts int
}

// NewClient constructs a solver client with defaults applied.
func NewClient(apiKey, baseURL string, doer HTTPDoer) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		APIKey:       apiKey,
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Doer:         doer,
		PollInterval: 5 * time.Second,
		PollAttempts: 24,
	}, nil
}

type createTaskRequest struct {
	ClientKey string `json:"clientKey"`
	Task      any    `json:"task"`
}

type recaptchaTask struct {
	Type       string `json:"type"`
	WebsiteURL string `json:"websiteURL"`
	WebsiteKey string `json:"websiteKey"`
}

type createTaskResponse struct {
	ErrorID          int    `json:"errorId"`
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
	TaskID           int64  `json:"taskId"`
}

type taskResultRequest struct {
	ClientKey string `json:"clientKey"`
	TaskID    int64  `json:"taskId"`
}

type taskResultResponse struct {
	ErrorID          int    `json:"errorId"`
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
	Status           string `json:"status"`
	Solution         struct {
		GRecaptchaResponse string `json:"gRecaptchaResponse"`
	} `json:"solution"`
}

type balanceRequest struct {
	ClientKey string `json:"clientKey"`
}

type balanceResponse struct {
	ErrorID          int     `json:"errorId"`
	ErrorCode        string  `json:"errorCode"`
	ErrorDescription string  `json:"errorDescription"`
	Balance          float64 `json:"balance"`
}

// SolveRecaptcha submits a proxyless reCAPTCHA v2 task and polls until the
// service returns a response token.
func (c *Client) SolveRecaptcha(ctx context.Context, websiteURL, siteKey string) (string, error) {
	if strings.TrimSpace(siteKey) == "" {
		return "", fmt.Errorf("site key is required")
	}
	var created createTaskResponse
	err := c.post(ctx, "/createTask", createTaskRequest{
		ClientKey: c.APIKey,
		Task: recaptchaTask{
			Type:       "NoCaptchaTaskProxyless",
			WebsiteURL: websiteURL,
			WebsiteKey: siteKey,
		},
	}, &created)
	if err != nil {
		return "", err
	}
	if created.ErrorID != 0 {
		return "", &APIError{Code: created.ErrorCode, Description: created.ErrorDescription}
	}

	for attempt := 0; attempt < c.PollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.PollInterval):
		}

		var result taskResultResponse
		if err := c.post(ctx, "/getTaskResult", taskResultRequest{ClientKey: c.APIKey, TaskID: created.TaskID}, &result); err != nil {
			return "", err
		}
		if result.ErrorID != 0 {
			return "", &APIError{Code: result.ErrorCode, Description: result.ErrorDescription}
		}
		if result.Status == "ready" {
			if result.Solution.GRecaptchaResponse == "" {
				return "", fmt.Errorf("ready result without token")
			}
			return result.Solution.GRecaptchaResponse, nil
		}
	}
	return "", ErrTimeout
}

// Balance returns the remaining account balance.
func (c *Client) Balance(ctx context.Context) (float64, error) {
	var result balanceResponse
	if err := c.post(ctx, "/getBalance", balanceRequest{ClientKey: c.APIKey}, &result); err != nil {
		return 0, err
	}
	if result.ErrorID != 0 {
		return 0, &APIError{Code: result.ErrorCode, Description: result.ErrorDescription}
	}
	return result.Balance, nil
}

// post sends a JSON request and decodes the JSON response.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Doer.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("captcha api status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
