package match

import (
	"strings"
	"unicode"
)

// Normalize lowercases text, strips punctuation, and collapses whitespace
// runs so scraped and stored questions compare on content alone.
func Normalize(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(unicode.ToLower(r))
		default:
			builder.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}

// Tokens returns the normalized token set of a text, deduplicated.
func Tokens(text string) []string {
	fields := strings.Fields(Normalize(text))
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		tokens = append(tokens, field)
	}
	return tokens
}

// Similarity returns the token overlap between two texts as the ratio of
// shared tokens to all distinct tokens. Two empty texts score zero.
func Similarity(a, b string) float64 {
	tokensA := Tokens(a)
	tokensB := Tokens(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(tokensA))
	for _, token := range tokensA {
		setA[token] = struct{}{}
	}
	shared := 0
	for _, token := range tokensB {
		if _, ok := setA[token]; ok {
			shared++
		}
	}
	union := len(tokensA) + len(tokensB) - shared
	return float64(shared) / float64(union)
}
