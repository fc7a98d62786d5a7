// Package llm asks a chat-completion model for the answer to a quiz
// question when the local cache has no match.
package llm

import (
	"context"
	"net/http"
)

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Provider suggests an answer for a question given the visible options.
// The reply is free text; callers fuzzy-match it back to an option.
type Provider interface {
	SuggestAnswer(ctx context.Context, question string, options []string) (string, error)
}
