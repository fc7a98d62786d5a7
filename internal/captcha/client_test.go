package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient("secret", server.URL, server.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.PollInterval = time.Millisecond
	client.PollAttempts = 5
	return client, server
}

// TestSolveRecaptcha verifies the create/poll cycle up to a ready token.
func TestSolveRecaptcha(t *testing.T) {
	var polls atomic.Int64
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/createTask":
			var req createTaskRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode create: %v", err)
			}
			if req.ClientKey != "secret" {
				t.Errorf("unexpected client key %q", req.ClientKey)
			}
			task, _ := req.Task.(map[string]any)
			if task["type"] != "NoCaptchaTaskProxyless" || task["websiteKey"] != "site-key" {
				t.Errorf("unexpected task payload %v", req.Task)
			}
			w.Write([]byte(`{"errorId":0,"taskId":42}`))
		case "/getTaskResult":
			if polls.Add(1) < 3 {
				w.Write([]byte(`{"errorId":0,"status":"processing"}`))
				return
			}
			w.Write([]byte(`{"errorId":0,"status":"ready","solution":{"gRecaptchaResponse":"tok-123"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	token, err := client.SolveRecaptcha(context.Background(), "https://example.test/claim", "site-key")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("unexpected token %q", token)
	}
	if polls.Load() != 3 {
		t.Fatalf("expected 3 polls, got %d", polls.Load())
	}
}

// TestSolveRecaptchaAPIError verifies service error codes become APIError.
func TestSolveRecaptchaAPIError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errorId":1,"errorCode":"ERROR_ZERO_BALANCE","errorDescription":"no funds"}`))
	}))

	_, err := client.SolveRecaptcha(context.Background(), "https://example.test", "site-key")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "ERROR_ZERO_BALANCE" {
		t.Fatalf("unexpected code %q", apiErr.Code)
	}
}

// TestSolveRecaptchaTimeout verifies the poll budget.
func TestSolveRecaptchaTimeout(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/createTask":
			w.Write([]byte(`{"errorId":0,"taskId":7}`))
		default:
			w.Write([]byte(`{"errorId":0,"status":"processing"}`))
		}
	}))

	_, err := client.SolveRecaptcha(context.Background(), "https://example.test", "site-key")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

// TestSolveRecaptchaContextCancel verifies cancellation during polling.
func TestSolveRecaptchaContextCancel(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errorId":0,"taskId":7}`))
	}))
	client.PollInterval = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.SolveRecaptcha(ctx, "https://example.test", "site-key")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

// TestBalance verifies balance queries.
func TestBalance(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/getBalance" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"errorId":0,"balance":12.5}`))
	}))

	balance, err := client.Balance(context.Background())
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 12.5 {
		t.Fatalf("unexpected balance %v", balance)
	}
}

// TestNewClientValidation verifies required settings.
func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "", nil); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	client, err := NewClient("key", "", nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.BaseURL != defaultBaseURL {
		t.Fatalf("expected default base url, got %q", client.BaseURL)
	}
}
